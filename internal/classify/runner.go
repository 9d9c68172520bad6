package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ironsheep/phone-usage-eval/internal/config"
	"github.com/ironsheep/phone-usage-eval/internal/detection"
	"github.com/ironsheep/phone-usage-eval/internal/imaging"
	"github.com/ironsheep/phone-usage-eval/internal/labels"
)

// Result is the label assigned to one image.
type Result struct {
	ImageName string `json:"image_name"`
	ClassID   int    `json:"class_id"`
}

// Summary describes a completed run.
type Summary struct {
	Output         string   `json:"output"`
	Images         int      `json:"images"`
	PhoneInUse     int      `json:"phone_in_use"`
	Unreadable     int      `json:"unreadable"`
	Duplicates     int      `json:"duplicates"`
	SkippedFolders []string `json:"skipped_folders,omitempty"`
}

// Runner classifies every JPEG in a list of folders and writes the labels
// to a CSV file.
type Runner struct {
	folders  []string
	output   string
	loader   ImageLoader
	detector detection.RegionDetector
	logger   *zap.Logger
}

// Option customizes a Runner.
type Option func(*Runner)

// WithDetector replaces the default color detector.
func WithDetector(d detection.RegionDetector) Option {
	return func(r *Runner) { r.detector = d }
}

// WithLoader replaces the default file loader.
func WithLoader(l ImageLoader) Option {
	return func(r *Runner) { r.loader = l }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// NewRunner validates cfg and returns a Runner for it.
func NewRunner(cfg config.Classifier, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		output:   cfg.OutputPath,
		loader:   imaging.Loader{},
		detector: detection.NewColorDetector(),
		logger:   zap.NewNop(),
	}
	for _, f := range cfg.Folders {
		if strings.TrimSpace(f) != "" {
			r.folders = append(r.folders, f)
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run classifies all images and writes the output file.
//
// Folders that do not exist are skipped with a warning. Image names must be
// unique in the output, so a name already seen in an earlier folder is
// skipped with a warning and the first occurrence wins. Images that cannot
// be read are labelled ClassNotInUse. Results are kept in memory and the
// output file is overwritten once at the end; nothing is written if the
// run stops before that.
func (r *Runner) Run() (*Summary, error) {
	summary := &Summary{Output: r.output}

	var results []Result
	seen := make(map[string]string)
	for _, folder := range r.folders {
		names, err := listImages(folder)
		if err != nil {
			r.logger.Warn("folder not found, skipping", zap.String("folder", folder), zap.Error(err))
			summary.SkippedFolders = append(summary.SkippedFolders, folder)
			continue
		}
		r.logger.Debug("scanning folder", zap.String("folder", folder), zap.Int("images", len(names)))

		for _, name := range names {
			if first, ok := seen[name]; ok {
				r.logger.Warn("duplicate image name, keeping first",
					zap.String("name", name),
					zap.String("folder", folder),
					zap.String("first_folder", first))
				summary.Duplicates++
				continue
			}
			seen[name] = folder

			res, readable := r.classify(filepath.Join(folder, name), name)
			results = append(results, res)

			summary.Images++
			if res.ClassID == ClassPhoneInUse {
				summary.PhoneInUse++
			}
			if !readable {
				summary.Unreadable++
			}
		}
	}

	table := make(labels.Table, 0, len(results))
	for _, res := range results {
		table = append(table, labels.Record{ImageName: res.ImageName, ClassID: res.ClassID})
	}
	if err := labels.WriteFile(r.output, table); err != nil {
		return nil, fmt.Errorf("failed to write results: %w", err)
	}

	r.logger.Info("done",
		zap.String("output", r.output),
		zap.Int("images", summary.Images),
		zap.Int("phone_in_use", summary.PhoneInUse),
		zap.Int("unreadable", summary.Unreadable),
		zap.Int("duplicates", summary.Duplicates),
		zap.Int("skipped_folders", len(summary.SkippedFolders)))

	return summary, nil
}

func (r *Runner) classify(path, name string) (Result, bool) {
	d, err := DetectFile(r.loader, r.detector, path)
	if err != nil {
		r.logger.Debug("unreadable image, treating as no detections", zap.String("path", path), zap.Error(err))
	}

	class := Decide(d)
	r.logger.Debug("classified",
		zap.String("path", path),
		zap.Int("heads", len(d.Heads)),
		zap.Int("phones", len(d.Phones)),
		zap.Int("class_id", class))

	return Result{ImageName: name, ClassID: class}, err == nil
}

// listImages returns the JPEG file names directly inside folder in
// lexical order.
func listImages(folder string) ([]string, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", folder)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !imaging.IsJPEGName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
