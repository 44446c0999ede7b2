package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"neocalc/internal/engine"
	_ "neocalc/internal/engine/functions"
	"neocalc/internal/infrastructure/i18n"
)

// A local calculator loop: one in-memory context, no persistence. Error
// messages follow the NEOCALC_LOCALE environment variable.
func main() {
	locale := os.Getenv("NEOCALC_LOCALE")
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	translator := i18n.NewTranslator(i18n.DefaultLocale)

	ctx := engine.NewContext()
	showFractions := false

	fmt.Printf("neocalc (%s) | :fractions :decimals :quit\n", i18n.MatchLocale(locale))
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case ":quit", ":q":
			return
		case ":fractions":
			showFractions = true
			continue
		case ":decimals":
			showFractions = false
			continue
		}

		value, err := engine.Evaluate(normalize(line), ctx)
		if err != nil {
			fmt.Println(translator.TError(locale, err))
			continue
		}
		ctx.SetVar("ans", value)
		if showFractions {
			fmt.Println(engine.FormatNumber(value))
		} else {
			fmt.Println(engine.FormatNumberDecimal(value))
		}
	}
}

// normalize rewrites keypad glyphs (÷ × − π √) into engine syntax.
func normalize(line string) string {
	var b strings.Builder
	for _, r := range line {
		b.WriteString(engine.MapInputToken(string(r)))
	}
	return b.String()
}
