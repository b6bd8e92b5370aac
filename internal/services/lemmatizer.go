package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/kljensen/snowball/english"
)

var ErrNoLemmatizer = errors.New("no lemmatizer provider could be loaded")

// Lemmatizer reduces a lowercased word to its base form. Implementations
// must be safe for concurrent use and must not change after loading.
type Lemmatizer interface {
	Lemma(word string) string
}

// LemmatizerProvider is one entry of the provider chain tried by LoadLemmatizer.
type LemmatizerProvider struct {
	Name string
	Load func() (Lemmatizer, error)
}

type golemLemmatizer struct {
	lemmatizer *golem.Lemmatizer
}

func (g *golemLemmatizer) Lemma(word string) string {
	return strings.ToLower(g.lemmatizer.Lemma(word))
}

type snowballStemmer struct{}

func (snowballStemmer) Lemma(word string) string {
	return english.Stem(word, false)
}

// GolemProvider loads the English dictionary lemmatizer.
func GolemProvider() LemmatizerProvider {
	return LemmatizerProvider{
		Name: "golem",
		Load: func() (Lemmatizer, error) {
			lemmatizer, err := golem.New(en.New())
			if err != nil {
				return nil, fmt.Errorf("failed to load golem english dictionary: %w", err)
			}
			return &golemLemmatizer{lemmatizer: lemmatizer}, nil
		},
	}
}

// SnowballProvider loads the Porter2 stemmer. It has no external resources
// and only fails if the stemmer itself misbehaves on a probe word.
func SnowballProvider() LemmatizerProvider {
	return LemmatizerProvider{
		Name: "snowball",
		Load: func() (Lemmatizer, error) {
			s := snowballStemmer{}
			if s.Lemma("running") == "" {
				return nil, fmt.Errorf("snowball stemmer returned empty stem")
			}
			return s, nil
		},
	}
}

var knownProviders = map[string]func() LemmatizerProvider{
	"golem":    GolemProvider,
	"snowball": SnowballProvider,
}

// ProvidersByName resolves configured provider names. Unknown names are skipped.
func ProvidersByName(names []string) []LemmatizerProvider {
	var providers []LemmatizerProvider
	for _, name := range names {
		factory, ok := knownProviders[name]
		if !ok {
			log.Printf("⚠️  Unknown lemmatizer provider %q, skipping", name)
			continue
		}
		providers = append(providers, factory())
	}
	return providers
}

// LoadLemmatizer tries providers in order and commits to the first one that
// loads. It returns ErrNoLemmatizer only when every provider fails.
func LoadLemmatizer(providers ...LemmatizerProvider) (Lemmatizer, string, error) {
	var errs []error
	for _, p := range providers {
		lemmatizer, err := loadProvider(p)
		if err != nil {
			log.Printf("⚠️  Lemmatizer provider %s failed: %v", p.Name, err)
			errs = append(errs, err)
			continue
		}
		return lemmatizer, p.Name, nil
	}

	if len(errs) == 0 {
		return nil, "", ErrNoLemmatizer
	}
	return nil, "", fmt.Errorf("%w: %w", ErrNoLemmatizer, errors.Join(errs...))
}

func loadProvider(p LemmatizerProvider) (lemmatizer Lemmatizer, err error) {
	defer func() {
		if r := recover(); r != nil {
			lemmatizer = nil
			err = fmt.Errorf("provider %s panicked: %v", p.Name, r)
		}
	}()

	if p.Load == nil {
		return nil, fmt.Errorf("provider %s has no loader", p.Name)
	}
	lemmatizer, err = p.Load()
	if err == nil && lemmatizer == nil {
		err = fmt.Errorf("provider %s returned no lemmatizer", p.Name)
	}
	return lemmatizer, err
}

var (
	sharedOnce       sync.Once
	sharedLemmatizer Lemmatizer
	sharedProvider   string
	sharedErr        error
)

// SharedLemmatizer loads the process-wide lemmatizer on first use. Later calls
// return the same instance regardless of the names passed.
func SharedLemmatizer(names []string) (Lemmatizer, string, error) {
	sharedOnce.Do(func() {
		sharedLemmatizer, sharedProvider, sharedErr = LoadLemmatizer(ProvidersByName(names)...)
		if sharedErr == nil {
			log.Printf("✅ Lemmatizer loaded (provider: %s)", sharedProvider)
		}
	})
	return sharedLemmatizer, sharedProvider, sharedErr
}
