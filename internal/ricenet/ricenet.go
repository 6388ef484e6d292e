// Package ricenet wraps the pre-trained rice-leaf disease detection model.
package ricenet

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	tflite "github.com/tphakala/go-tflite"
	"github.com/tphakala/go-tflite/delegates/xnnpack"

	"github.com/riceguard/riceguard-go/internal/conf"
	"github.com/riceguard/riceguard-go/internal/errors"
	"github.com/riceguard/riceguard-go/internal/logging"
)

// defaultLabels matches the class order the model was trained with.
// Overridden by ricenet.labelpath when set.
var defaultLabels = []string{
	"Blight",
	"Brown Spot",
	"False Smut",
	"Healthy",
	"Leaf Smut",
	"Rice Blast",
	"Stem Rot",
	"Tungro",
}

// RiceNET represents the detection model with its interpreter and configuration.
// Constructed once at process start and shared; the interpreter is not
// reentrant, so inference calls serialize on an internal mutex.
type RiceNET struct {
	Settings    *conf.Settings
	Labels      []string
	interpreter *tflite.Interpreter
	model       *tflite.Model
	mu          sync.Mutex
	logger      *slog.Logger
}

// New initializes a new RiceNET instance with the given settings, loading the
// model and labels and allocating interpreter tensors.
func New(settings *conf.Settings) (*RiceNET, error) {
	rn := &RiceNET{
		Settings: settings,
		logger:   logging.ForService("ricenet"),
	}

	if err := rn.loadLabels(); err != nil {
		return nil, errors.New(fmt.Errorf("RiceNET: failed to load class labels: %w", err)).
			Component("ricenet").
			Category(errors.CategoryModelInit).
			Context("label_path", settings.RiceNET.LabelPath).
			Build()
	}

	if err := rn.initializeModel(); err != nil {
		return nil, errors.New(fmt.Errorf("RiceNET: failed to initialize detection model: %w", err)).
			Component("ricenet").
			Category(errors.CategoryModelInit).
			ModelContext(settings.RiceNET.ModelPath).
			Build()
	}

	return rn, nil
}

// initializeModel loads and initializes the TFLite detection model.
func (rn *RiceNET) initializeModel() error {
	start := time.Now()

	modelData, err := os.ReadFile(rn.Settings.RiceNET.ModelPath)
	if err != nil {
		return errors.Wrap(err).
			Category(errors.CategoryModelLoad).
			ModelContext(rn.Settings.RiceNET.ModelPath).
			Timing("model-load", time.Since(start)).
			Build()
	}

	model := tflite.NewModel(modelData)
	if model == nil {
		return errors.Newf("cannot load TensorFlow Lite model").
			Category(errors.CategoryModelInit).
			ModelContext(rn.Settings.RiceNET.ModelPath).
			Context("model_size_mb", len(modelData)/1024/1024).
			Build()
	}
	rn.model = model

	threads := rn.determineThreadCount(rn.Settings.RiceNET.Threads)

	options := tflite.NewInterpreterOptions()
	if rn.Settings.RiceNET.UseXNNPACK {
		delegate := xnnpack.New(xnnpack.DelegateOptions{NumThreads: int32(max(1, threads-1))}) //nolint:gosec // thread count bounded by CPU count
		if delegate == nil {
			rn.logger.Warn("Failed to create XNNPACK delegate, falling back to default CPU")
			options.SetNumThread(threads)
		} else {
			options.AddDelegate(delegate)
			options.SetNumThread(1)
		}
	} else {
		options.SetNumThread(threads)
	}

	options.SetErrorReporter(func(msg string, userData any) {
		logging.Error("TFLite error", "message", msg)
	}, nil)

	rn.interpreter = tflite.NewInterpreter(model, options)
	if rn.interpreter == nil {
		return fmt.Errorf("cannot create interpreter")
	}
	if status := rn.interpreter.AllocateTensors(); status != tflite.OK {
		return fmt.Errorf("tensor allocation failed")
	}

	// Model data is no longer needed, TFLite keeps its own copy
	runtime.GC()

	rn.logger.Info("RiceNET model initialized",
		"model", rn.Settings.RiceNET.ModelPath,
		"classes", len(rn.Labels),
		"threads", threads,
		"total_cpus", runtime.NumCPU())

	return nil
}

// determineThreadCount returns the number of interpreter threads to use.
func (rn *RiceNET) determineThreadCount(configuredThreads int) int {
	if configuredThreads > 0 && configuredThreads <= runtime.NumCPU() {
		return configuredThreads
	}
	return runtime.NumCPU()
}

// loadLabels reads class labels from the configured file, one label per line,
// or falls back to the embedded defaults.
func (rn *RiceNET) loadLabels() error {
	path := rn.Settings.RiceNET.LabelPath
	if path == "" {
		rn.Labels = append([]string(nil), defaultLabels...)
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var labels []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			labels = append(labels, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(labels) == 0 {
		return fmt.Errorf("label file %s is empty", path)
	}

	rn.Labels = labels
	return nil
}

// label returns the class label for an index, or a placeholder when the
// model reports a class outside the label set.
func (rn *RiceNET) label(classID int) string {
	if classID >= 0 && classID < len(rn.Labels) {
		return rn.Labels[classID]
	}
	return fmt.Sprintf("class_%d", classID)
}

// Close releases interpreter and model resources.
func (rn *RiceNET) Close() {
	rn.mu.Lock()
	defer rn.mu.Unlock()

	if rn.interpreter != nil {
		rn.interpreter.Delete()
		rn.interpreter = nil
	}
	if rn.model != nil {
		rn.model.Delete()
		rn.model = nil
	}
}
