// Command ontology is a walkthrough of the three analysis engines on a small
// steam-plant model: build an ontology with embeddings, find a pattern by
// similarity, restrict the graph to a source-target corridor, and propagate a
// failure property across it.
//
// By default it talks to the configured LLM provider for embeddings and
// propagation suggestions. Pass -offline to run with the deterministic
// embedder and a rule-based suggester instead; no model server is needed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/000alen/ontology/pkg/causal"
	"github.com/000alen/ontology/pkg/config"
	"github.com/000alen/ontology/pkg/graph"
	"github.com/000alen/ontology/pkg/llm"
	"github.com/000alen/ontology/pkg/llm/ollama"
	"github.com/000alen/ontology/pkg/llm/openai"
	"github.com/000alen/ontology/pkg/logging"
	"github.com/000alen/ontology/pkg/matching"
	"github.com/000alen/ontology/pkg/metrics"
	"github.com/000alen/ontology/pkg/pubsub"
	"github.com/000alen/ontology/pkg/reachability"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (optional, env vars apply either way)")
	offline := flag.Bool("offline", false, "Use the deterministic embedder and a rule-based suggester")
	flag.Parse()

	config.LoadDotenv()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logging.SetDefaultLogger(logging.NewConsoleLogger(logging.ParseLevel(cfg.Logging.Level)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	registry := metrics.DefaultRegistry()
	bus := pubsub.NewBus()
	defer bus.Shutdown()

	embedder, suggester, client, err := buildCollaborators(cfg, *offline, registry)
	if err != nil {
		log.Fatalf("Failed to build collaborators: %v", err)
	}

	fmt.Println("🚀 Ontology engines demo")
	if *offline {
		fmt.Println("   mode: offline (deterministic embedder, rule-based suggester)")
	} else {
		fmt.Printf("   mode: %s (chat=%s embed=%s)\n", cfg.LLM.Provider, cfg.LLM.Model, cfg.Embedding.Model)
	}

	factory, err := graph.NewFactory(graph.FactoryParams{
		Embedder: embedder,
		Events:   bus,
		Metrics:  registry,
	})
	if err != nil {
		log.Fatalf("Failed to create factory: %v", err)
	}

	// Build the steam line
	fmt.Println("\n📊 Building the steam line ontology...")

	overpressure := factory.CreateProperty(ctx, "overpressure", "drum pressure above the relief setpoint")
	boiler := factory.CreateNode(ctx, "package boiler", "fires the steam header", overpressure)
	header := factory.CreateNode(ctx, "steam header", "distributes high pressure steam")
	turbine := factory.CreateNode(ctx, "steam turbine", "expands steam to drive the shaft")
	generator := factory.CreateNode(ctx, "turbine generator", "converts shaft power to electricity")
	drain := factory.CreateNode(ctx, "condensate drain", "collects condensate from the header")

	g := factory.CreateGraph(
		[]*graph.Node{boiler, header, turbine, generator, drain},
		[]*graph.Edge{
			factory.CreateEdge(ctx, "supplies", "main steam supply", boiler, header),
			factory.CreateEdge(ctx, "drives", "steam admission", header, turbine),
			factory.CreateEdge(ctx, "spins", "shaft coupling", turbine, generator),
			factory.CreateEdge(ctx, "drains to", "condensate return", header, drain),
		},
	)

	for _, n := range g.Nodes {
		fmt.Printf("   created node: %s (%s)\n", n.Name, n.ID)
	}

	fmt.Println("\n⏳ Waiting for embeddings...")
	if err := factory.Wait(ctx); err != nil {
		log.Fatalf("Embedding wait interrupted: %v", err)
	}
	fmt.Println("   ✅ all embeddings resolved")

	// Locate the turbine pattern by similarity
	fmt.Println("\n🔍 Matching the turbine pattern...")

	qTurbine := factory.CreateNode(ctx, "steam turbine", "expands steam to drive the shaft")
	qGenerator := factory.CreateNode(ctx, "turbine generator", "converts shaft power to electricity")
	q := factory.CreateGraph(
		[]*graph.Node{qTurbine, qGenerator},
		[]*graph.Edge{factory.CreateEdge(ctx, "spins", "shaft coupling", qTurbine, qGenerator)},
	)
	if err := factory.Wait(ctx); err != nil {
		log.Fatalf("Embedding wait interrupted: %v", err)
	}

	matchOpts := cfg.Matching.Options()
	matchOpts.Events = bus
	matchOpts.Metrics = registry
	match, found, err := matching.Match(g, q, matchOpts)
	if err != nil {
		log.Fatalf("Match failed: %v", err)
	}
	if found {
		fmt.Printf("   matched %d nodes, %d edges:\n", len(match.Nodes), len(match.Edges))
		for _, n := range match.Nodes {
			fmt.Printf("   - %s (%s)\n", n.Name, n.ID)
		}
	} else {
		fmt.Println("   no match above the similarity threshold")
	}

	// Restrict to the boiler-to-generator corridor
	fmt.Println("\n🌐 Extracting the boiler-to-generator corridor...")

	sources := []graph.NodeID{boiler.ID}
	targets := []graph.NodeID{generator.ID}
	corridor := reachability.Incident(g, sources, targets, reachability.DefaultOptions())
	fmt.Printf("   corridor: %d nodes, %d edges (condensate leg excluded)\n",
		len(corridor.Nodes), len(corridor.Edges))

	// Propagate the failure property
	fmt.Println("\n⚡ Propagating overpressure from the boiler...")

	progress, err := bus.Subscribe(ctx, pubsub.TopicInferProgress)
	if err != nil {
		log.Fatalf("Subscribe failed: %v", err)
	}
	go func() {
		for ev := range progress.Channel() {
			if pass, ok := ev.Payload.(pubsub.InferPass); ok {
				fmt.Printf("   pass %d complete (changed=%v)\n", pass.Pass, pass.Changed)
			}
		}
	}()

	engine, err := causal.NewEngine(causal.EngineParams{
		Suggester: suggester,
		Events:    bus,
		Metrics:   registry,
	})
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	result, err := engine.Infer(ctx, g, sources, targets,
		map[graph.NodeID]*graph.Property{boiler.ID: overpressure},
		cfg.Inference.Options(),
	)
	if err != nil {
		log.Fatalf("Inference failed: %v", err)
	}

	fmt.Printf("\n📈 Run %s: converged=%v after %d iteration(s)\n",
		result.RunID, result.Converged, result.Iterations)
	for _, p := range result.Predictions {
		fmt.Printf("   target %s: confidence %.2f\n", p.TargetID, p.Confidence)
		for _, entry := range p.Properties {
			fmt.Printf("   - %s (%.2f) attributed to %s\n",
				entry.Property.Name, entry.Confidence, entry.Source)
		}
		fmt.Printf("     %s\n", p.Reasoning)
	}

	if client != nil {
		usage := client.GetMetrics()
		fmt.Printf("\n🧮 LLM usage: %d prompt + %d completion tokens, %s, %.1f tok/s\n",
			usage.InputTokens, usage.OutputTokens,
			(time.Duration(usage.DurationMs) * time.Millisecond).Round(time.Millisecond),
			usage.TokensPerSecond)
	}

	registry.UpdateSystemMetrics(start)
	fmt.Println("\n✨ Demo complete!")
}

// buildCollaborators wires the embedder and suggester the engines consume.
// Online mode builds them over the configured LLM provider and also returns
// the client for usage reporting; offline mode needs no client.
func buildCollaborators(cfg *config.Config, offline bool, registry *metrics.Registry) (graph.Embedder, causal.Suggester, llm.Client, error) {
	if offline {
		return graph.NewStaticEmbedder(cfg.Embedding.Dimensions), &decaySuggester{decay: 0.85}, nil, nil
	}

	var (
		client llm.Client
		err    error
	)
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		client, err = openai.New(openai.Params{
			ChatModel:      cfg.LLM.Model,
			EmbeddingModel: cfg.Embedding.Model,
			Dimensions:     cfg.Embedding.Dimensions,
			BaseURL:        cfg.LLM.BaseURL,
			APIKey:         cfg.LLM.APIKey,
			Timeout:        cfg.LLM.Timeout(),
			MaxConcurrent:  int64(cfg.Embedding.MaxConcurrent),
			Metrics:        registry,
		})
	default:
		client, err = ollama.New(ollama.Params{
			ChatModel:      cfg.LLM.Model,
			EmbeddingModel: cfg.Embedding.Model,
			Dimensions:     cfg.Embedding.Dimensions,
			BaseURL:        cfg.LLM.BaseURL,
			APIKey:         cfg.LLM.APIKey,
			Timeout:        cfg.LLM.Timeout(),
			MaxConcurrent:  int64(cfg.Embedding.MaxConcurrent),
			Metrics:        registry,
		})
	}
	if err != nil {
		return nil, nil, nil, err
	}

	embedder, err := llm.NewEmbedder(client)
	if err != nil {
		return nil, nil, nil, err
	}
	suggester, err := llm.NewPropertySuggester(llm.PropertySuggesterParams{Client: client})
	if err != nil {
		return nil, nil, nil, err
	}
	return embedder, suggester, client, nil
}

// decaySuggester propagates every predecessor property one hop with a fixed
// per-step decay, skipping properties the vertex already carries so the run
// converges.
type decaySuggester struct {
	decay float64
}

func (s *decaySuggester) Suggest(_ context.Context, req causal.SuggestionRequest) ([]causal.Suggestion, error) {
	present := make(map[graph.PropertyID]bool)
	for _, p := range req.Current.Properties {
		present[p.ID] = true
	}

	var out []causal.Suggestion
	for _, pred := range req.Predecessors {
		for _, p := range pred.Properties {
			if present[p.ID] {
				continue
			}
			present[p.ID] = true
			out = append(out, causal.Suggestion{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Confidence:  p.Confidence * s.decay,
			})
		}
	}
	return out, nil
}
