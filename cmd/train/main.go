// Command train fits the intent classifier on the catalog's training
// patterns and writes the model artifact the server loads at startup.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/collegechat/collegechat-go/internal/classifier"
	"github.com/collegechat/collegechat-go/internal/config"
	"github.com/collegechat/collegechat-go/internal/knowledge"
	"github.com/collegechat/collegechat-go/internal/logger"
)

func main() {
	var (
		holdout = flag.Float64("holdout", 0.2, "fraction of samples held out for evaluation")
		seed    = flag.Int64("seed", 42, "random seed for the split and SGD shuffling")
		epochs  = flag.Int("epochs", 0, "training epochs (0 uses the default)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel).WithModule("train")

	catalog, err := knowledge.LoadCatalog(cfg.KnowledgeDir)
	if err != nil {
		log.Fatal("failed to load intent catalog", "error", err)
	}

	var samples []classifier.Sample
	for _, intent := range catalog.Intents {
		for _, pattern := range intent.Patterns {
			samples = append(samples, classifier.Sample{Text: pattern, Label: intent.Tag})
		}
	}
	log.Info("collected training samples",
		"samples", len(samples),
		"intents", len(catalog.Intents),
	)

	train, test := classifier.Split(samples, *holdout, *seed)

	art, err := classifier.Train(train, classifier.TrainOptions{Epochs: *epochs, Seed: *seed})
	if err != nil {
		log.Fatal("training failed", "error", err)
	}

	model := classifier.NewModel(art)
	trainAcc := classifier.Evaluate(model, train)
	log.Info("training complete",
		"classes", len(art.Classes),
		"features", len(art.Vocabulary),
		"train_accuracy", fmt.Sprintf("%.3f", trainAcc),
	)
	if len(test) > 0 {
		testAcc := classifier.Evaluate(model, test)
		log.Info("hold-out evaluation", "samples", len(test), "accuracy", fmt.Sprintf("%.3f", testAcc))
	}

	if err := classifier.WriteArtifact(cfg.ModelPath, art); err != nil {
		log.Fatal("failed to write model artifact", "error", err)
	}
	log.Info("model artifact written", "path", cfg.ModelPath)
}
