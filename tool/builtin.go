package tool

import (
	"context"
	"math"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/habiliai/toolserver/entity"
	"github.com/habiliai/toolserver/errors"
	"github.com/samber/lo"
)

const (
	EchoUsage = "@echo(user) or @echo(system) or @echo(assistant) to get the last message of the respective role"
	AddUsage  = "@add(num1,num2)"
)

var toolsBannerTmpl = template.Must(template.New("tools_banner").Funcs(sprig.TxtFuncMap()).Parse(
	`coding tools <br><hr>` +
		`@ask(text) to get an agent reply<br>` +
		`@read(text) to get a user input given some text<br>` +
		`@print(text) to print some text<br>` +
		`{{ .Usages | join "<br>" }}<br><hr>`,
))

// Tools lists the usage line of every tool in r that declares one. It reads
// r when called, so tools registered after it are listed too.
func Tools(r *Registry) Func {
	return func(_ context.Context, _ []entity.Message, arg string) (string, error) {
		if arg != "" {
			return "", errors.Invalidf("No argument expected")
		}

		var sb strings.Builder
		if err := toolsBannerTmpl.Execute(&sb, map[string]any{
			"Usages": r.Usages(),
		}); err != nil {
			return "", errors.Wrapf(err, "failed to render tools banner")
		}

		return sb.String(), nil
	}
}

// Echo returns the content of the most recent message whose role is arg.
func Echo(_ context.Context, history []entity.Message, arg string) (string, error) {
	role := entity.Role(arg)
	if !role.Valid() {
		return "", errors.Invalidf("Can only echo one of: user, system, assistant")
	}

	matched := lo.Filter(history, func(m entity.Message, _ int) bool {
		return m.Role == role
	})
	if len(matched) == 0 {
		return "", errors.Invalidf("No previous %s message", role)
	}

	return matched[len(matched)-1].Content, nil
}

// Add sums exactly two numbers given as "a,b" or "a b".
func Add(_ context.Context, _ []entity.Message, arg string) (string, error) {
	values := Tokenize(arg)
	if len(values) != 2 {
		return "", errors.Invalidf("Expected exactly 2 values to add: %q", values)
	}

	var sum float64
	for _, v := range values {
		f, err := parseFloat(v)
		if err != nil {
			return "", err
		}
		sum += f
	}

	return formatFloat(sum), nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, errors.Invalidf("could not convert string to float: '%s'", s)
	}
	// Out of range values saturate to ±Inf instead of failing.
	return f, nil
}

// formatFloat renders integral values with one decimal ("5.0") and anything
// else in the shortest form that round-trips. Exponent notation is used only
// below 1e-4 or from 1e16 up.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == math.Trunc(f) && math.Abs(f) < 1e16:
		return strconv.FormatFloat(f, 'f', 1, 64)
	case math.Abs(f) >= 1e-4 && math.Abs(f) < 1e16:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
