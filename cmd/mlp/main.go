// Package main trains a small feed-forward classifier on the XOR truth table.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/born-ml/mlp/network"
	"github.com/born-ml/mlp/nn"
	"github.com/born-ml/mlp/tensor"
)

const version = "v0.1.0"

const (
	defaultSeed = 42
	// maxReseeds bounds how many consecutive seeds buildXOR tries.
	maxReseeds = 16
)

func main() {
	epochs := flag.Int("epochs", 100, "Number of training epochs")
	lr := flag.Float64("lr", 0.001, "Learning rate")
	seed := flag.Uint64("seed", defaultSeed, "Seed for weight initialization, bumped if the output starts dead")
	verbose := flag.Bool("verbose", true, "Log training progress")
	logEvery := flag.Int("log-every", 10, "Log every N epochs")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	optimizer := flag.String("optimizer", "adam", "Optimizer: adam or sgd")
	demo := flag.Bool("demo", false, "Print array factory and activation examples before training")
	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("mlp %s\n", version)
		return
	}

	logger, err := newLogger(os.Stderr, *logFormat)
	if err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	kind, err := parseOptimizer(*optimizer)
	if err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	if *demo {
		if err := runDemo(os.Stdout, *seed); err != nil {
			log.Fatalf("Demo failed: %v", err)
		}
	}

	x, y, err := xorData()
	if err != nil {
		log.Fatalf("Failed to create data: %v", err)
	}

	net, err := buildXOR(network.Config{
		LearningRate: *lr,
		Optimizer:    kind,
		Seed:         *seed,
		Logger:       logger,
		LogEvery:     *logEvery,
	}, x, y)
	if err != nil {
		log.Fatalf("Failed to build network: %v", err)
	}
	fmt.Println(net.Summary())

	history, err := net.Train(x, y, *epochs, *verbose)
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}
	if len(history) > 0 {
		fmt.Printf("Loss: %.4f -> %.4f\n", history[0], history[len(history)-1])
	}

	predictions, err := net.Predict(x)
	if err != nil {
		log.Fatalf("Prediction failed: %v", err)
	}
	fmt.Printf("Predictions: %v\n", predictions)
}

// buildXOR assembles Dense(2,4) -> Dense(4,1) -> ReLU -> Sigmoid.
//
// With no activation between the Dense layers, the output unit is affine in
// the input, and some seeds leave it non-positive on every row. The trailing
// ReLU then passes no gradient. Such a network is rebuilt with the next seed,
// up to maxReseeds times; the last attempt is returned as is and Train warns
// about it.
func buildXOR(cfg network.Config, x, y *tensor.NDArray) (*network.Network, error) {
	var net *network.Network
	for attempt := 0; attempt < maxReseeds; attempt++ {
		c := cfg
		c.Seed = cfg.Seed + uint64(attempt)

		net = network.New(c)
		if err := addXORStages(net); err != nil {
			return nil, err
		}

		flow, err := net.HasGradientFlow(x, y)
		if err != nil {
			return nil, err
		}
		if flow {
			if attempt > 0 {
				net.Config().Logger.Warn("dead output at initialization, reseeded",
					slog.Uint64("requested_seed", cfg.Seed),
					slog.Uint64("seed", c.Seed),
				)
			}
			return net, nil
		}
	}
	return net, nil
}

func addXORStages(net *network.Network) error {
	if err := net.AddDense(2, 4, true); err != nil {
		return err
	}
	if err := net.AddDense(4, 1, true); err != nil {
		return err
	}
	net.AddReLU()
	net.AddSigmoid()
	return nil
}

func xorData() (x, y *tensor.NDArray, err error) {
	x, err = tensor.FromSlice([]float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	}, tensor.Shape{4, 2})
	if err != nil {
		return nil, nil, err
	}
	y, err = tensor.FromSlice([]float64{0, 1, 1, 0}, tensor.Shape{4, 1})
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func newLogger(w io.Writer, format string) (*slog.Logger, error) {
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, nil)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, nil)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
}

func parseOptimizer(name string) (network.OptimizerKind, error) {
	switch name {
	case "adam":
		return network.OptimizerAdam, nil
	case "sgd":
		return network.OptimizerSGD, nil
	default:
		return 0, fmt.Errorf("unknown optimizer %q (want adam or sgd)", name)
	}
}

// runDemo prints the array factories, initializers and activations.
func runDemo(w io.Writer, seed uint64) error {
	src := tensor.NewSource(seed)

	a, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5}, tensor.Shape{5})
	if err != nil {
		return err
	}
	b, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	if err != nil {
		return err
	}
	seq, err := tensor.Arange(0, 10, 2)
	if err != nil {
		return err
	}
	lin, err := tensor.Linspace(0, 1, 5)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "1D: %v\n", a)
	fmt.Fprintf(w, "2D: %v\n", b)
	fmt.Fprintf(w, "Zeros: %v\n", tensor.Zeros(tensor.Shape{2, 3}))
	fmt.Fprintf(w, "Ones: %v\n", tensor.Ones(tensor.Shape{3, 2}))
	fmt.Fprintf(w, "Random normal: %v\n", tensor.Randn(tensor.Shape{2, 3}, src))
	fmt.Fprintf(w, "Arange: %v\n", seq)
	fmt.Fprintf(w, "Linspace: %v\n", lin)
	fmt.Fprintf(w, "Identity: %v\n", tensor.Eye(3))
	fmt.Fprintf(w, "Xavier uniform: %v\n", nn.XavierUniform(tensor.Shape{64, 128}, src))
	fmt.Fprintf(w, "Kaiming normal: %v\n", nn.KaimingNormal(tensor.Shape{128, 64}, src))

	x, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3})
	if err != nil {
		return err
	}
	y, err := tensor.FromSlice([]float64{4, 5, 6}, tensor.Shape{3})
	if err != nil {
		return err
	}
	sum, err := tensor.Add(x, y)
	if err != nil {
		return err
	}
	prod, err := tensor.Mul(x, y)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "x + y: %v\n", sum)
	fmt.Fprintf(w, "x * y: %v\n", prod)
	fmt.Fprintf(w, "x * 2: %v\n", tensor.MulScalar(x, 2))

	act, err := tensor.FromSlice([]float64{-1, 0, 1, 2, -2, 0.5}, tensor.Shape{2, 3})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Sigmoid: %v\n", nn.NewSigmoid().Forward(act))
	fmt.Fprintf(w, "ReLU: %v\n", nn.NewReLU().Forward(act))
	return nil
}
