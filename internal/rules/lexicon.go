package rules

import "github.com/rcliao/wellbeing-intake/internal/model"

// phrases maps each code to the token sequences that signal it. Apostrophes
// are stripped during tokenization, so "can't" is written "cant".
var phrases = map[model.FactorCode][]string{
	model.CodeHeadache:            {"headache", "headaches", "migraine", "migraines", "head hurts", "head is pounding", "pounding head"},
	model.CodeDizziness:           {"dizzy", "dizziness", "lightheaded", "light headed", "vertigo", "room is spinning"},
	model.CodeNausea:              {"nausea", "nauseous", "queasy", "feel sick", "feeling sick", "throw up", "threw up", "vomiting"},
	model.CodeFatigue:             {"tired", "exhausted", "fatigue", "fatigued", "drained", "no energy", "worn out"},
	model.CodePain:                {"pain", "ache", "aches", "aching", "hurts", "sore"},
	model.CodeFever:               {"fever", "feverish", "chills", "high temperature"},
	model.CodeChestPain:           {"chest pain", "chest hurts", "chest is tight", "chest tightness", "tight chest", "pain in my chest"},
	model.CodeBreathingDifficulty: {"cant breathe", "cannot breathe", "short of breath", "shortness of breath", "trouble breathing", "hard to breathe", "struggling to breathe"},
	model.CodeLowMood:             {"sad", "depressed", "hopeless", "low mood", "feeling low", "feel low", "feeling down", "feel down", "miserable", "empty inside"},
	model.CodeAnxiety:             {"anxious", "anxiety", "panic", "panicking", "nervous", "worried", "on edge"},
	model.CodeStress:              {"stress", "stressed", "overwhelmed", "under pressure", "burned out", "burnt out"},
	model.CodeSelfHarmIdeation:    {"hurt myself", "kill myself", "end my life", "suicidal", "self harm", "dont want to be here", "want to die"},
	model.CodePoorSleep:           {"cant sleep", "couldnt sleep", "insomnia", "slept badly", "sleep badly", "no sleep", "barely slept", "poor sleep", "up all night", "woke up at"},
	model.CodeSkippedMeals:        {"skipped breakfast", "skipped lunch", "skipped dinner", "skipped meals", "skipped a meal", "havent eaten", "didnt eat", "forgot to eat", "not eating"},
	model.CodeLowHydration:        {"dehydrated", "not drinking water", "no water", "thirsty", "havent drunk any water"},
	model.CodeAlcoholUse:          {"alcohol", "wine", "beer", "drunk", "hungover", "hangover", "drinking last night"},
	model.CodeCaffeineUse:         {"coffee", "caffeine", "energy drink", "energy drinks", "espresso"},
	model.CodeSedentary:           {"sitting all day", "havent moved", "no exercise", "sedentary", "at my desk all day", "in bed all day"},
	model.CodeScreenTime:          {"screen", "screens", "scrolling", "doomscrolling", "on my phone", "phone all night"},
	model.CodeFinancialStrain:     {"money", "rent", "bills", "debt", "cant afford", "broke"},
	model.CodeTimePressure:        {"no time", "deadline", "deadlines", "too busy", "so busy", "swamped"},
	model.CodeCaregivingLoad:      {"caring for", "caregiver", "caregiving", "looking after"},
	model.CodeSocialIsolation:     {"lonely", "alone", "isolated", "no one to talk to", "no friends"},
	model.CodeExercise:            {"exercise", "exercised", "went for a walk", "walked", "went running", "gym", "yoga", "workout", "worked out"},
	model.CodeSocialSupport:       {"friend", "friends", "family", "partner", "talked to", "support from"},
}

// labels are the human wording used in questions and responses.
var labels = map[model.FactorCode]string{
	model.CodeHeadache:            "headache",
	model.CodeDizziness:           "dizziness",
	model.CodeNausea:              "nausea",
	model.CodeFatigue:             "tiredness",
	model.CodePain:                "pain",
	model.CodeFever:               "fever",
	model.CodeChestPain:           "chest pain",
	model.CodeBreathingDifficulty: "trouble breathing",
	model.CodeLowMood:             "low mood",
	model.CodeAnxiety:             "anxiety",
	model.CodeStress:              "stress",
	model.CodeSelfHarmIdeation:    "these thoughts",
	model.CodePoorSleep:           "sleep trouble",
}

func label(c model.FactorCode) string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}

// domainWords add domain evidence without producing factors.
var domainWords = map[model.Domain][]string{
	model.DomainPhysical:  {"body", "sick", "doctor", "symptom", "symptoms", "head", "stomach"},
	model.DomainMental:    {"mood", "feel", "feeling", "mind", "thoughts", "emotional"},
	model.DomainSleep:     {"sleep", "slept", "bed", "nap", "night", "awake"},
	model.DomainNutrition: {"eat", "ate", "food", "meal", "meals", "water", "drink", "diet"},
	model.DomainActivity:  {"move", "walk", "active", "steps", "sitting"},
	model.DomainSocial:    {"people", "talk", "relationship", "together"},
	model.DomainResources: {"work", "job", "pay", "afford", "time", "schedule"},
}

var negations = map[string]bool{
	"no": true, "not": true, "never": true, "dont": true, "didnt": true, "doesnt": true,
	"without": true, "isnt": true, "arent": true, "wasnt": true, "havent": true, "hasnt": true,
}

var intensifiers = map[string]bool{
	"really": true, "very": true, "so": true, "extremely": true, "severe": true, "terrible": true,
	"awful": true, "constant": true, "unbearable": true, "super": true, "worst": true, "horrible": true,
}

var severityWords = map[string]bool{
	"mild": true, "moderate": true, "severe": true, "bad": true, "slight": true, "intense": true,
	"unbearable": true, "terrible": true, "awful": true, "worst": true, "manageable": true,
}

// horizonCues are checked in order; the first matching horizon wins.
var horizonCues = []struct {
	horizon model.TimeHorizon
	cues    []string
}{
	{model.HorizonLifeCourse, []string{"for years", "my whole life", "since childhood", "since i was a kid", "always have"}},
	{model.HorizonChronic, []string{"for weeks", "for months", "chronic", "every day", "all the time", "for a while", "a week or more", "on and off", "for a long time"}},
	{model.HorizonRecent, []string{"since yesterday", "this week", "few days", "couple of days", "lately", "recently", "since monday", "since the weekend"}},
	{model.HorizonMomentary, []string{"right now", "today", "this morning", "tonight", "just now", "this afternoon", "just today"}},
}

var affirmatives = map[string]bool{
	"yes": true, "yeah": true, "yep": true, "y": true, "sure": true, "definitely": true,
	"sort of": true, "kind of": true, "a bit": true, "a little": true, "i think so": true,
}
