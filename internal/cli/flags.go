package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/epcrisk/internal/domain"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

// dateValue is a pflag.Value for calendar dates. It accepts YYYY-MM-DD and
// "today", and stores UTC midnight.
type dateValue struct {
	target *time.Time
	now    func() time.Time
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(target *time.Time, now func() time.Time) *dateValue {
	return &dateValue{target: target, now: now}
}

func (d *dateValue) String() string {
	if d.target == nil || d.target.IsZero() {
		return ""
	}
	return d.target.Format(dateLayout)
}

func (d *dateValue) Set(s string) error {
	t, err := parseDate(s, d.now)
	if err != nil {
		return err
	}
	*d.target = t
	return nil
}

func (d *dateValue) Type() string {
	return "date"
}

func parseDate(s string, now func() time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "today") {
		if now == nil {
			now = time.Now
		}
		return domain.DateOnly(now()), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return domain.DateOnly(t), nil
}

// dateFlag registers a date flag on fs.
func dateFlag(fs *pflag.FlagSet, app *App, target *time.Time, name, usage string) {
	fs.Var(newDateValue(target, app.Now), name, usage)
}
