package rules

import (
	"fmt"
	"strings"

	"github.com/rcliao/wellbeing-intake/internal/model"
)

// RouteNextStep picks the response strategy for a snapshot.
func (e *Engine) RouteNextStep(snap model.Snapshot) model.RoutingDecision {
	switch {
	case snap.RiskBand == model.RiskUrgent:
		return model.RoutingDecision{Route: model.RouteCrisisSupport, Reason: "urgent risk band"}
	case snap.NextAction == model.NextAskFollowUp:
		return model.RoutingDecision{Route: model.RouteClarify, Reason: "follow-up question pending"}
	case len(snap.Codes) > 0:
		return model.RoutingDecision{Route: model.RouteGuidance, Reason: fmt.Sprintf("%d factor(s) reported", len(snap.Codes))}
	default:
		return model.RoutingDecision{Route: model.RouteAcknowledge, Reason: "no factors reported"}
	}
}

var headlines = map[model.RouteKind]string{
	model.RouteCrisisSupport: "Please get support right away",
	model.RouteClarify:       "One quick question",
	model.RouteGuidance:      "Here is what might help",
	model.RouteAcknowledge:   "Thanks, noted",
}

var crisisBody = []string{
	"What you describe can need urgent care. If you are in danger or this feels severe, contact your local emergency number now.",
	"If you are having thoughts of harming yourself, reach out to a crisis line or someone you trust right away.",
}

var tips = map[model.FactorCode]string{
	model.CodeHeadache:     "Rest somewhere quiet and dim, and sip some water.",
	model.CodeDizziness:    "Sit or lie down until the dizziness passes, and stand up slowly.",
	model.CodeNausea:       "Small sips of water and bland food can help settle nausea.",
	model.CodeFatigue:      "A short break or an early night may help with the tiredness.",
	model.CodeFever:        "Keep hydrated and check your temperature again in a few hours.",
	model.CodeLowMood:      "Reaching out to someone you trust can lighten a low day.",
	model.CodeAnxiety:      "Slow breathing, four counts in and six out, can ease anxiety.",
	model.CodeStress:       "Try picking one small thing to set down today.",
	model.CodePoorSleep:    "A regular wind-down time and fewer screens before bed support sleep.",
	model.CodeSkippedMeals: "A simple snack now can steady your energy.",
	model.CodeLowHydration: "Keep a glass of water within reach.",
	model.CodeSedentary:    "A five-minute walk or stretch can help.",
}

// BuildResponseModel renders the outward-facing response for a turn.
func (e *Engine) BuildResponseModel(text string, snap model.Snapshot, routing model.RoutingDecision, usage model.UsageContext, factors []model.Factor, plan *model.FollowUpPlan) model.ResponseModel {
	resp := model.ResponseModel{
		Route:      routing.Route,
		Headline:   headlines[routing.Route],
		Body:       []string{},
		Disclosure: disclosure(usage),
		Usage:      usage,
	}
	for _, f := range factors {
		resp.FactorCodes = append(resp.FactorCodes, f.Code)
	}

	switch routing.Route {
	case model.RouteCrisisSupport:
		resp.Body = append(resp.Body, crisisBody...)
	case model.RouteClarify:
		if plan != nil {
			resp.Question = plan.QuestionText
			resp.Choices = append([]string(nil), plan.Choices...)
		} else {
			resp.Question = snap.QuestionText
		}
	case model.RouteGuidance:
		for _, f := range factors {
			if tip, ok := tips[f.Code]; ok {
				resp.Body = append(resp.Body, tip)
			}
		}
		if len(resp.Body) == 0 {
			resp.Body = append(resp.Body, fmt.Sprintf("Noted: %s.", joinLabels(factors)))
		}
	case model.RouteAcknowledge:
		resp.Body = append(resp.Body, "Your entry has been recorded.")
	}
	return resp
}

func joinLabels(factors []model.Factor) string {
	parts := make([]string, 0, len(factors))
	for _, f := range factors {
		parts = append(parts, label(f.Code))
	}
	return strings.Join(parts, ", ")
}

func disclosure(u model.UsageContext) string {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	return fmt.Sprintf("saved context: %s, profile this session: %s", onOff(u.UseSavedContext), onOff(u.SessionUseProfile))
}
