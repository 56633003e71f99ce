package cli

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	sessionPredictors = map[string]complete.Predictor{
		"u": predict.Something,
		"p": predict.Something,
	}
	transactionPredictors = map[string]complete.Predictor{
		"amount":   predict.Something,
		"category": predict.Something,
		"d":        predict.Something,
		"type":     predict.Set{"income", "expense"},
	}
	backupPredictors = map[string]complete.Predictor{
		"f": predict.Files("*.csv"),
	}
)

func flags(sets ...map[string]complete.Predictor) map[string]complete.Predictor {
	all := make(map[string]complete.Predictor)
	for _, set := range sets {
		for name, p := range set {
			all[name] = p
		}
	}
	return all
}

// Completion describes the subcommands and their flags for shell completion. Install it
// with COMP_INSTALL=1 ledger.
func Completion() *complete.Command {
	index := map[string]complete.Predictor{"i": predict.Something}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"register": {Flags: flags(sessionPredictors)},
			"add":      {Flags: flags(sessionPredictors, transactionPredictors)},
			"list":     {Flags: flags(sessionPredictors)},
			"update":   {Flags: flags(sessionPredictors, transactionPredictors, index)},
			"delete":   {Flags: flags(sessionPredictors, index)},
			"budget": {Flags: flags(sessionPredictors, map[string]complete.Predictor{
				"category": predict.Something,
				"amount":   predict.Something,
			})},
			"report": {Flags: flags(sessionPredictors, map[string]complete.Predictor{
				"s": predict.Something,
				"d": predict.Something,
			})},
			"backup":  {Flags: flags(backupPredictors)},
			"restore": {Flags: flags(backupPredictors)},
			"menu":    {},
			"help":    {},
		},
		Flags: map[string]complete.Predictor{
			"v":   predict.Nothing,
			"raw": predict.Nothing,
		},
	}
}
