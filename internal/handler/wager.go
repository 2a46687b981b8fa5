package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cup-order-bot/internal/game/cuporder"
)

// ErrWagerSyntax is returned by ParseWagers for input that cannot be read as
// a wager set at all. Structural problems that parse cleanly (a bad pair, a
// cup outside A-C) are left for the engine to reject.
var ErrWagerSyntax = errors.New("invalid wager syntax")

// WagerUsage describes the /play argument format.
const WagerUsage = "/play exact=BAC:10 pair=AC:first:4 single=A:2:6\n" +
	"exact=<order>:<amount>\n" +
	"pair=<AB|BC|AC>:<first|second>:<amount>\n" +
	"single=<cup>:<position>:<amount>\n" +
	"Any bet may be left out."

// defaultWagers returns the wager set used for omitted bets: structurally
// valid, zero amount.
func defaultWagers() cuporder.WagerSet {
	return cuporder.WagerSet{
		Exact:  cuporder.ExactWager{Order: "ABC"},
		Pair:   cuporder.PairWager{Pair: cuporder.Pairs[0], Prediction: cuporder.PredictFirst},
		Single: cuporder.SingleWager{Cup: cuporder.CupA, Position: 1},
	}
}

// ParseWagers reads /play arguments such as
//
//	exact=BAC:10 pair=AC:first:4 single=A:2:6
//
// into a WagerSet. Letters are upper-cased and the prediction lower-cased.
// Each bet may appear at most once.
func ParseWagers(args []string) (cuporder.WagerSet, error) {
	w := defaultWagers()
	if len(args) == 0 {
		return w, fmt.Errorf("%w: no bets given", ErrWagerSyntax)
	}

	seen := make(map[string]bool, 3)
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || value == "" {
			return w, fmt.Errorf("%w: %q is not key=value", ErrWagerSyntax, arg)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if seen[key] {
			return w, fmt.Errorf("%w: %s given twice", ErrWagerSyntax, key)
		}
		seen[key] = true

		parts := strings.Split(value, ":")
		var err error
		switch key {
		case "exact":
			err = parseExact(parts, &w.Exact)
		case "pair":
			err = parsePair(parts, &w.Pair)
		case "single":
			err = parseSingle(parts, &w.Single)
		default:
			return w, fmt.Errorf("%w: unknown bet %q", ErrWagerSyntax, key)
		}
		if err != nil {
			return w, err
		}
	}

	return w, nil
}

func parseExact(parts []string, w *cuporder.ExactWager) error {
	if len(parts) != 2 {
		return fmt.Errorf("%w: exact takes <order>:<amount>", ErrWagerSyntax)
	}
	amount, err := parseAmount(parts[1])
	if err != nil {
		return err
	}
	w.Order = strings.ToUpper(strings.TrimSpace(parts[0]))
	w.Amount = amount
	return nil
}

func parsePair(parts []string, w *cuporder.PairWager) error {
	if len(parts) != 3 {
		return fmt.Errorf("%w: pair takes <pair>:<first|second>:<amount>", ErrWagerSyntax)
	}
	amount, err := parseAmount(parts[2])
	if err != nil {
		return err
	}
	w.Pair = strings.ToUpper(strings.TrimSpace(parts[0]))
	w.Prediction = cuporder.Prediction(strings.ToLower(strings.TrimSpace(parts[1])))
	w.Amount = amount
	return nil
}

func parseSingle(parts []string, w *cuporder.SingleWager) error {
	if len(parts) != 3 {
		return fmt.Errorf("%w: single takes <cup>:<position>:<amount>", ErrWagerSyntax)
	}
	position, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return fmt.Errorf("%w: position %q is not a whole number", ErrWagerSyntax, parts[1])
	}
	amount, err := parseAmount(parts[2])
	if err != nil {
		return err
	}

	// Anything but a single letter becomes the zero Symbol, which the engine rejects.
	var cup cuporder.Symbol
	if letter := strings.ToUpper(strings.TrimSpace(parts[0])); len(letter) == 1 {
		cup = cuporder.Symbol(letter[0])
	}

	w.Cup = cup
	w.Position = position
	w.Amount = amount
	return nil
}

func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(s), "$"), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q is not a number", ErrWagerSyntax, s)
	}
	return amount, nil
}
