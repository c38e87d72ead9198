package numerology

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tartampluch/go-numerology/internal/config"
)

// Percent is a whole-number percentage rendered as "NN%".
type Percent int

func (p Percent) String() string {
	return fmt.Sprintf(config.FormatPercent, int(p))
}

// MarshalText keeps the "NN%" form in JSON and YAML output.
func (p Percent) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText accepts "NN%" as well as a bare number.
func (p *Percent) UnmarshalText(b []byte) error {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(string(b)), "%"))
	if err != nil {
		return err
	}
	*p = Percent(n)
	return nil
}

// MomenSukses is the average success weight over ages 18..57.
type MomenSukses float64

// String returns "1+" for averages of at least 1 and a five-decimal figure
// otherwise.
func (m MomenSukses) String() string {
	if m >= 1 {
		return "1+"
	}
	return strconv.FormatFloat(float64(m), 'f', 5, 64)
}

// Scale maps the value onto 0..100 for threshold comparisons ("1+" is 100).
func (m MomenSukses) Scale() float64 {
	if m >= 1 {
		return 100
	}
	return float64(m) * 100
}

func (m MomenSukses) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText reads back the String form; "1+" becomes 1.
func (m *MomenSukses) UnmarshalText(b []byte) error {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(string(b)), "+"), 64)
	if err != nil {
		return err
	}
	*m = MomenSukses(f)
	return nil
}
