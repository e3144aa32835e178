package intake

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcliao/wellbeing-intake/internal/model"
)

// ParseFactorWrites parses "code:confidence[:horizon]" items separated by
// commas, as accepted by the CLI and MCP surfaces. An empty string yields
// no writes.
func ParseFactorWrites(s string) ([]model.FactorWrite, error) {
	var out []model.FactorWrite
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.Split(item, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("%w: factor %q, want code:confidence[:horizon]", ErrInvalidTurn, item)
		}
		conf, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: factor %q confidence: %v", ErrInvalidTurn, item, err)
		}
		w := model.FactorWrite{Code: model.FactorCode(parts[0]), Confidence: conf}
		if len(parts) == 3 {
			w.TimeHorizon = model.TimeHorizon(parts[2])
		}
		out = append(out, w)
	}
	if err := validateWrites(out); err != nil {
		return nil, err
	}
	return out, nil
}
