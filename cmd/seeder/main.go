// Command seeder writes a synthetic corpus for benchmarking fuzzy search.
//
// Each line is a seed sentence, some words altered by single-character typos
// so that fuzzy metrics find matches an exact search misses. The corpus is
// written to stdout or -out, and loaded into a database when -db is given.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/poiesic/fuzzscan"
	"github.com/poiesic/fuzzscan/ingestion"
)

var sentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"A gentle breeze rustled the leaves of the old oak tree.",
	"She found a hidden key in the dusty attic.",
	"The city skyline glowed under the starry night sky.",
	"He whispered secrets to the wind, hoping they would travel far.",
	"Rain drummed on the rooftop, creating a soothing rhythm.",
	"A bright comet streaked across the horizon at midnight.",
	"They laughed together as fireworks painted the evening air.",
	"The ancient library held stories that never faded.",
	"Beneath the waves, coral gardens shimmered in colors unseen.",
	"The hummingbird hovered beside a vibrant purple flower.",
	"A mysterious map led them to a forgotten treasure.",
	"Her heart raced as she stepped onto the stage for the first time.",
	"Sunlight filtered through curtains, turning dust motes into golden specks.",
	"They tasted the sweetest strawberries from the farmer's garden.",
	"The old clock chimed thirteen times in an abandoned town.",
	"A sudden thunderclap shattered the silence of the forest.",
	"He composed a melody that echoed through the valleys.",
	"The desert dunes shifted silently under a pale moon.",
	"A small kitten meowed softly, waiting for warmth.",
	"She painted the sunset with bold strokes of crimson and gold.",
	"A silver fox slipped past the fences into the twilight.",
	"They discovered an ancient rune carved deep within the stone.",
	"The wind carried scents of jasmine from distant gardens.",
	"He built a wooden bridge across the swift river.",
	"Her laughter echoed through the empty halls of the old manor.",
	"A lone wolf howled, echoing into the vast night.",
	"They tasted coffee brewed fresh in the quiet dawn.",
	"The moon rose slowly, casting silver light on the lake.",
	"A child drew a rainbow with crayons on the sidewalk.",
	"He felt the rough bark of the tree against his palm.",
	"She carried a bouquet of wildflowers from the meadow.",
	"The train rattled through tunnels carved into stone.",
	"They watched a parade of balloons float over the town square.",
	"A gentle snowfall blanketed the city in quiet white.",
	"He whispered to the stars, hoping they would hear.",
}

var (
	seedFileName = flag.String("src", "", "file of seed sentences, one per line")
	outFileName  = flag.String("out", "", "write the corpus here instead of stdout")
	dbPath       = flag.String("db", "", "also load the corpus into this database")
	lineCount    = flag.Int("n", 10000, "number of lines to generate")
	typoRate     = flag.Float64("typos", 0.1, "probability that a word gets a typo")
	seed         = flag.Int64("seed", 1, "random seed")
)

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// generate returns n corpus lines drawn from source. Each word is given a
// typo with probability rate.
func generate(source []string, n int, rate float64, rng *rand.Rand) []string {
	if len(source) == 0 {
		return nil
	}
	lines := make([]string, n)
	for i := range lines {
		words := strings.Fields(source[rng.Intn(len(source))])
		for w, word := range words {
			if rng.Float64() < rate {
				words[w] = mutate(word, rng)
			}
		}
		lines[i] = strings.Join(words, " ")
	}
	return lines
}

const letters = "abcdefghijklmnopqrstuvwxyz"

// mutate applies one substitution, insertion, deletion or transposition.
// The result is always within edit distance 2 of word.
func mutate(word string, rng *rand.Rand) string {
	if word == "" {
		return string(letters[rng.Intn(len(letters))])
	}
	b := []byte(word)
	pos := rng.Intn(len(b))
	switch rng.Intn(4) {
	case 0:
		b[pos] = letters[rng.Intn(len(letters))]
	case 1:
		b = append(b[:pos], append([]byte{letters[rng.Intn(len(letters))]}, b[pos:]...)...)
	case 2:
		if len(b) > 1 {
			b = append(b[:pos], b[pos+1:]...)
		}
	default:
		if pos+1 < len(b) {
			b[pos], b[pos+1] = b[pos+1], b[pos]
		}
	}
	return string(b)
}

func writeLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func run() error {
	source := sentences
	if *seedFileName != "" {
		lines, err := linesFromFile(*seedFileName)
		if err != nil {
			return err
		}
		source = nil
		for line := range lines {
			if strings.TrimSpace(line) != "" {
				source = append(source, line)
			}
		}
	}

	corpus := generate(source, *lineCount, *typoRate, rand.New(rand.NewSource(*seed)))

	out := io.Writer(os.Stdout)
	if *outFileName != "" {
		f, err := os.Create(*outFileName)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := writeLines(out, corpus); err != nil {
		return err
	}

	if *dbPath == "" {
		return nil
	}
	db, err := fuzzscan.NewDatabase(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline(ingestion.WithProgress(os.Stderr))
	if err != nil {
		return err
	}
	defer pipeline.Release()

	ctx := context.Background()
	if err := pipeline.Reset(ctx); err != nil {
		return err
	}
	stats, err := pipeline.Ingest(ctx, corpus)
	if err != nil {
		return err
	}
	slog.Info("corpus loaded", "db", *dbPath, "stored", stats.Stored, "duplicates", stats.Duplicates)
	return nil
}

func main() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()

	if err := run(); err != nil {
		slog.Error("seeding failed", "err", err)
		os.Exit(1)
	}
}
