package manifest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/form"
)

// ParseAssignments turns "key=value" pairs into answers, converting each value to the type of
// its question.
func ParseAssignments(def *Definition, pairs []string) (Answers, error) {
	out := Answers{}
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("assignment %q: expected key=value", pair)
		}
		key = strings.TrimSpace(key)
		q, ok := def.Question(key)
		if !ok {
			return nil, fmt.Errorf("assignment %q: %w", key, domain.ErrUnknownProperty)
		}
		if err := q.assign(&out, raw); err != nil {
			return nil, fmt.Errorf("assignment %q: %w", key, err)
		}
	}
	return out, nil
}

func (q Question) assign(out *Answers, raw string) error {
	key := domain.Key(q.Key)
	switch q.Type {
	case TypeNumber:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		form.MapPath[Answers, float64](key).Set(out, v)
	case TypeConfirm:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		form.MapPath[Answers, bool](key).Set(out, v)
	default:
		form.MapPath[Answers, string](key).Set(out, raw)
	}
	return nil
}
