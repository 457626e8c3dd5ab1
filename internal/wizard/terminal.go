package wizard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
	"github.com/MikeSquared-Agency/Advisor/internal/recommend"
)

var errQuit = errors.New("quit")

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	promptColor = color.New(color.FgYellow)
	warnColor   = color.New(color.FgRed)
	nameColor   = color.New(color.FgGreen, color.Bold)
	badgeColor  = color.New(color.FgMagenta)
)

// Terminal drives a Session over a line-oriented reader and writer.
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	rec    *recommend.Recommender
	logger *slog.Logger
}

func NewTerminal(in io.Reader, out io.Writer, rec *recommend.Recommender, logger *slog.Logger) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out, rec: rec, logger: logger}
}

// Run loops intro, questions and results until the user quits, input ends
// or ctx is cancelled.
func (t *Terminal) Run(ctx context.Context) error {
	s := NewSession()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := t.step(s)
		if errors.Is(err, errQuit) {
			fmt.Fprintln(t.out, "Goodbye.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (t *Terminal) step(s *Session) error {
	switch st := s.State(); {
	case st == StateIntro:
		t.intro()
		line, err := t.readLine(promptColor.Sprint("Press Enter to start or q to quit: "))
		if err != nil {
			return err
		}
		if strings.EqualFold(line, "q") {
			return errQuit
		}
		return s.Start()
	case st.IsQuestion():
		a, err := t.ask(st)
		if err != nil {
			return err
		}
		accepted, err := s.Apply(a)
		if err != nil {
			return err
		}
		if !accepted {
			warnColor.Fprintf(t.out, "Could not read that as a number, the %s filter was cleared.\n", st)
		}
		return nil
	case st == StateResults:
		res := t.rec.Recommend(s.Criteria())
		t.results(res)
		line, err := t.readLine(promptColor.Sprint("Press Enter to start over or q to quit: "))
		if err != nil {
			return err
		}
		if rerr := s.Restart(); rerr != nil {
			return rerr
		}
		if strings.EqualFold(line, "q") {
			return errQuit
		}
		return nil
	default:
		return fmt.Errorf("unknown state %q: %w", st, ErrInvalidTransition)
	}
}

func (t *Terminal) intro() {
	titleColor.Fprintln(t.out, "\n=== Vehicle Advisor ===")
	fmt.Fprintf(t.out, "Answer a few questions and get the best matches from %d vehicles.\n", t.rec.Catalog().Len())
}

func (t *Terminal) ask(st State) (Answer, error) {
	titleColor.Fprintf(t.out, "\n%s\n", st.Question())
	yes, err := t.confirm()
	if err != nil {
		return Answer{}, err
	}
	if !yes {
		return Answer{Skip: true}, nil
	}

	cat := t.rec.Catalog()
	ranges := cat.Ranges()
	switch st {
	case StateBudget:
		if ranges.Price.Valid {
			fmt.Fprintf(t.out, "Catalog prices range from %s to %s.\n",
				catalog.FormatPrice(ranges.Price.Min), catalog.FormatPrice(ranges.Price.Max))
		}
		return t.askRange("Minimum budget (blank for none): ", "Maximum budget (blank for none): ")
	case StateHorsepower:
		if ranges.Horsepower.Valid {
			fmt.Fprintf(t.out, "Catalog horsepower ranges from %.0f to %.0f hp.\n", ranges.Horsepower.Min, ranges.Horsepower.Max)
		}
		return t.askRange("Minimum horsepower (blank for none): ", "Maximum horsepower (blank for none): ")
	case StateSeats:
		if ranges.Seats.Valid {
			fmt.Fprintf(t.out, "Vehicles have between %.0f and %.0f seats.\n", ranges.Seats.Min, ranges.Seats.Max)
		}
		v, err := t.readLine(promptColor.Sprint("Minimum seats: "))
		return Answer{Value: v}, err
	case StateFuel:
		v, err := t.choose("Fuel types:", cat.FuelTypes())
		return Answer{Value: v}, err
	case StateBrand:
		v, err := t.choose("Brands:", cat.Brands())
		return Answer{Value: v}, err
	}
	return Answer{Skip: true}, nil
}

func (t *Terminal) askRange(minPrompt, maxPrompt string) (Answer, error) {
	min, err := t.readLine(promptColor.Sprint(minPrompt))
	if err != nil {
		return Answer{}, err
	}
	max, err := t.readLine(promptColor.Sprint(maxPrompt))
	if err != nil {
		return Answer{}, err
	}
	return Answer{Min: min, Max: max}, nil
}

func (t *Terminal) confirm() (bool, error) {
	for {
		line, err := t.readLine(promptColor.Sprint("[y/n]: "))
		if err != nil {
			return false, err
		}
		if yes, ok := ParseYesNo(line); ok {
			return yes, nil
		}
		warnColor.Fprintln(t.out, "Please answer y or n.")
	}
}

func (t *Terminal) choose(title string, options []string) (string, error) {
	if len(options) == 0 {
		return t.readLine(promptColor.Sprint("Type your choice: "))
	}
	fmt.Fprintln(t.out, title)
	for i, o := range options {
		fmt.Fprintf(t.out, "  %d. %s\n", i+1, o)
	}
	for {
		line, err := t.readLine(promptColor.Sprint("Enter a number or name: "))
		if err != nil {
			return "", err
		}
		if o, ok := MatchOption(options, line); ok {
			return o, nil
		}
		warnColor.Fprintf(t.out, "Choose between 1 and %d.\n", len(options))
	}
}

func (t *Terminal) results(res recommend.Result) {
	if len(res.Applied) > 0 {
		fmt.Fprintf(t.out, "\nApplied filters: %s\n", strings.Join(res.Applied, ", "))
	}
	titleColor.Fprintf(t.out, "Suggested vehicles (%d of %d results)\n", len(res.Recommendations), res.Total)

	if res.Empty() {
		warnColor.Fprintln(t.out, "No vehicles match your preferences.")
		fmt.Fprintln(t.out, "Try:")
		for _, s := range res.Suggestions {
			fmt.Fprintf(t.out, "  - %s\n", s)
		}
		return
	}

	for _, r := range res.Recommendations {
		v := r.Vehicle
		fmt.Fprintln(t.out)
		nameColor.Fprintf(t.out, "#%d %s", r.Rank, v.DisplayName())
		fmt.Fprintf(t.out, "  score %.2f", r.TotalScore)
		if r.Frontier {
			badgeColor.Fprint(t.out, " [best value]")
		}
		fmt.Fprintln(t.out)
		fmt.Fprintln(t.out, r.Explanation.Text())
		t.specs(v)
	}
	t.logger.Debug("results shown", "count", len(res.Recommendations), "total", res.Total)
}

func (t *Terminal) specs(v catalog.Vehicle) {
	hp, seats := catalog.NotAvailable, catalog.NotAvailable
	if v.Horsepower != nil {
		hp = strconv.FormatFloat(*v.Horsepower, 'f', -1, 64) + " hp"
	}
	if v.Seats != nil {
		seats = strconv.Itoa(*v.Seats)
	}
	rows := [][2]string{
		{"Engine", v.Engine},
		{"Capacity", v.Capacity},
		{"Horsepower", hp},
		{"Top speed", v.TopSpeed},
		{"0-100 km/h", v.Acceleration},
		{"Torque", v.Torque},
		{"Price", catalog.FormatPrice(v.Price)},
		{"Fuel", v.FuelType},
		{"Seats", seats},
	}
	for _, row := range rows {
		fmt.Fprintf(t.out, "  %-11s %s\n", row[0]+":", row[1])
	}
}

// readLine returns the trimmed line. End of input maps to errQuit.
func (t *Terminal) readLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(line) == "" {
				return "", errQuit
			}
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
