// Package metrics scores binary predictions against ground-truth labels.
//
// Evaluation joins the two label tables on image name, builds a 2x2
// confusion matrix with class 0 as the negative class and class 1 as the
// positive class, and derives six scalar metrics from it.
//
// # Zero Denominators
//
// A metric whose denominator is zero (for example precision when nothing
// was predicted positive) is reported as 0 and a warning naming the metric
// is logged.
//
// # Unmatched Identifiers
//
// Only image names present in both tables are scored. Names found in only
// one table are counted in JoinStats and reported as a warning; they are
// never an error. A join with no matches at all is an error.
package metrics

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ironsheep/phone-usage-eval/internal/labels"
)

const (
	// Negative is the class id counted as the negative outcome.
	Negative = 0

	// Positive is the class id counted as the positive outcome.
	Positive = 1
)

var (
	// ErrNoMatches is returned when no image name appears in both tables.
	ErrNoMatches = errors.New("no image names shared by ground truth and predictions")

	// ErrNonBinaryLabel is returned when a class id is neither 0 nor 1.
	ErrNonBinaryLabel = errors.New("class id is not binary")
)

// Pair is a ground-truth label matched with its prediction.
type Pair struct {
	ImageName string
	Truth     int
	Predicted int
}

// JoinStats describes how the two tables lined up.
type JoinStats struct {
	Matched         int      `json:"matched"`
	TruthOnly       []string `json:"truth_only,omitempty"`
	PredictionsOnly []string `json:"predictions_only,omitempty"`
}

// Confusion holds the four cells of a binary confusion matrix.
type Confusion struct {
	TN int `json:"tn"`
	FP int `json:"fp"`
	FN int `json:"fn"`
	TP int `json:"tp"`
}

// Total is the number of scored pairs.
func (c Confusion) Total() int {
	return c.TN + c.FP + c.FN + c.TP
}

// Bundle is the set of metrics reported for one evaluation.
type Bundle struct {
	Accuracy    float64 `json:"accuracy"`
	Precision   float64 `json:"precision"`
	Recall      float64 `json:"recall"`
	F1          float64 `json:"f1"`
	Sensitivity float64 `json:"sensitivity"`
	Specificity float64 `json:"specificity"`
}

// Result is everything produced by Evaluate.
type Result struct {
	Join      JoinStats `json:"join"`
	Confusion Confusion `json:"confusion"`
	Metrics   Bundle    `json:"metrics"`
}

// Join pairs records by image name, keeping ground-truth order. Both
// tables are validated to hold only binary class ids.
func Join(truth, pred labels.Table) ([]Pair, JoinStats, error) {
	if err := checkBinary("ground truth", truth); err != nil {
		return nil, JoinStats{}, err
	}
	if err := checkBinary("predictions", pred); err != nil {
		return nil, JoinStats{}, err
	}

	predIdx := pred.Index()
	truthIdx := truth.Index()

	var stats JoinStats
	pairs := make([]Pair, 0, len(truth))
	for _, r := range truth {
		p, ok := predIdx[r.ImageName]
		if !ok {
			stats.TruthOnly = append(stats.TruthOnly, r.ImageName)
			continue
		}
		pairs = append(pairs, Pair{ImageName: r.ImageName, Truth: r.ClassID, Predicted: p})
	}
	for _, r := range pred {
		if _, ok := truthIdx[r.ImageName]; !ok {
			stats.PredictionsOnly = append(stats.PredictionsOnly, r.ImageName)
		}
	}
	stats.Matched = len(pairs)

	if len(pairs) == 0 {
		return nil, stats, ErrNoMatches
	}
	return pairs, stats, nil
}

func checkBinary(source string, t labels.Table) error {
	for _, r := range t {
		if r.ClassID != Negative && r.ClassID != Positive {
			return fmt.Errorf("%s %q has class %d: %w", source, r.ImageName, r.ClassID, ErrNonBinaryLabel)
		}
	}
	return nil
}

// Count tallies matched pairs into a confusion matrix. The matrix rows are
// true classes and columns predicted classes, both ordered 0 then 1, so
// reading it row-major gives tn, fp, fn, tp.
func Count(pairs []Pair) Confusion {
	var m [2][2]int
	for _, p := range pairs {
		m[p.Truth][p.Predicted]++
	}
	return Confusion{TN: m[0][0], FP: m[0][1], FN: m[1][0], TP: m[1][1]}
}

// FromConfusion derives the metric bundle. warn, if non-nil, is called
// with the metric name each time a zero denominator forces a 0 result.
func FromConfusion(c Confusion, warn func(metric string)) Bundle {
	ratio := func(metric string, num, den int) float64 {
		if den == 0 {
			if warn != nil {
				warn(metric)
			}
			return 0
		}
		return float64(num) / float64(den)
	}

	var b Bundle
	b.Accuracy = ratio("accuracy", c.TP+c.TN, c.Total())
	b.Precision = ratio("precision", c.TP, c.TP+c.FP)
	b.Recall = ratio("recall", c.TP, c.TP+c.FN)

	// 2PR/(P+R) reduces to 2tp/(2tp+fp+fn), which also avoids a 0/0 when
	// both precision and recall are zero-substituted.
	b.F1 = ratio("f1", 2*c.TP, 2*c.TP+c.FP+c.FN)

	b.Sensitivity = b.Recall
	b.Specificity = ratio("specificity", c.TN, c.TN+c.FP)
	return b
}

// Evaluate joins the tables and computes the confusion matrix and metrics.
// Unmatched image names and zero denominators are logged as warnings.
func Evaluate(truth, pred labels.Table, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pairs, stats, err := Join(truth, pred)
	if err != nil {
		return nil, err
	}
	if n := len(stats.TruthOnly) + len(stats.PredictionsOnly); n > 0 {
		logger.Warn("image names without a counterpart were excluded",
			zap.Int("truth_only", len(stats.TruthOnly)),
			zap.Int("predictions_only", len(stats.PredictionsOnly)),
			zap.Int("matched", stats.Matched))
		logger.Debug("unmatched image names",
			zap.Strings("truth_only", stats.TruthOnly),
			zap.Strings("predictions_only", stats.PredictionsOnly))
	}

	c := Count(pairs)
	logger.Debug("confusion matrix",
		zap.Int("tn", c.TN), zap.Int("fp", c.FP), zap.Int("fn", c.FN), zap.Int("tp", c.TP))

	b := FromConfusion(c, func(metric string) {
		logger.Warn("zero denominator, reporting 0", zap.String("metric", metric))
	})

	return &Result{Join: stats, Confusion: c, Metrics: b}, nil
}

// WriteReport prints the metrics as a human-readable block with four
// decimal places.
func WriteReport(w io.Writer, b Bundle) error {
	_, err := fmt.Fprintf(w,
		"Evaluation Metrics:\n"+
			"Accuracy: %.4f\n"+
			"Precision: %.4f\n"+
			"Recall: %.4f\n"+
			"F1 Score: %.4f\n"+
			"Sensitivity: %.4f\n"+
			"Specificity: %.4f\n",
		b.Accuracy, b.Precision, b.Recall, b.F1, b.Sensitivity, b.Specificity)
	return err
}
