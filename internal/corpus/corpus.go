// Package corpus exposes the static, read-only data the name search draws
// from: per-language word lists bucketed by Expression number, the
// (Life Path, Expression) bucket recommendations and the name-meaning
// dictionary. Everything is embedded and parsed once.
package corpus

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/tartampluch/go-numerology/internal/config"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

const (
	wordsPattern = "data/words_*.yaml"
	bucketsFile  = "data/buckets.yaml"
	namesPath    = "data/names.yaml"
)

// BucketNames are the Expression buckets in their canonical order.
var BucketNames = []string{"Exp1", "Exp2", "Exp3", "Exp4", "Exp5", "Exp6", "Exp7", "Exp8", "Exp9"}

type wordFile struct {
	Language string              `yaml:"language"`
	Buckets  map[string][]string `yaml:"buckets"`
}

type bucketFile struct {
	Single map[string][]string   `yaml:"single"`
	Pairs  map[string][][]string `yaml:"pairs"`
}

// Corpus is immutable after Load and safe for concurrent use.
type Corpus struct {
	words  map[string]map[string][]string // language -> bucket -> words
	single map[string][]string
	pairs  map[string][][2]string
	dict   *Dictionary
}

// Load parses the embedded data files.
func Load() (*Corpus, error) {
	return load(dataFS)
}

func load(fsys fs.FS) (*Corpus, error) {
	c := &Corpus{
		words: make(map[string]map[string][]string),
		pairs: make(map[string][][2]string),
	}

	files, err := fs.Glob(fsys, wordsPattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCorpusLoad, err)
	}
	for _, name := range files {
		var wf wordFile
		if err := decode(fsys, name, &wf); err != nil {
			return nil, err
		}
		if wf.Language == "" {
			return nil, fmt.Errorf("%s: %s has no language", config.ErrCorpusLoad, name)
		}
		c.words[strings.ToLower(wf.Language)] = wf.Buckets

		slog.Debug(config.MsgCorpusLoaded,
			config.LogKeyComponent, config.CompCorpus,
			config.LogKeyLang, wf.Language,
			config.LogKeyWords, countWords(wf.Buckets),
		)
	}

	var bf bucketFile
	if err := decode(fsys, bucketsFile, &bf); err != nil {
		return nil, err
	}
	c.single = bf.Single
	for key, combos := range bf.Pairs {
		for _, combo := range combos {
			if len(combo) != 2 {
				return nil, fmt.Errorf("%s: pair bucket %s has %d entries", config.ErrCorpusLoad, key, len(combo))
			}
			c.pairs[key] = append(c.pairs[key], [2]string{combo[0], combo[1]})
		}
	}

	var nf namesFile
	if err := decode(fsys, namesPath, &nf); err != nil {
		return nil, err
	}
	c.dict = newDictionary(nf)

	return c, nil
}

func decode(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrCorpusLoad, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: %s: %w", config.ErrCorpusLoad, name, err)
	}
	return nil
}

func countWords(buckets map[string][]string) int {
	n := 0
	for _, ws := range buckets {
		n += len(ws)
	}
	return n
}

// Languages returns the languages that have a word list, sorted.
func (c *Corpus) Languages() []string {
	langs := lo.Keys(c.words)
	slices.Sort(langs)
	return langs
}

// Words returns the candidate words of the given languages, bucket by bucket
// in canonical order, without duplicates across languages. Languages with no
// word list of their own (ar, jp, cn, unknown codes) use the Indonesian one.
func (c *Corpus) Words(languages ...string) []string {
	return c.OrderedWords(languages, nil)
}

// OrderedWords is Words with the words of the hinted buckets moved first,
// in hint order.
func (c *Corpus) OrderedWords(languages []string, hint []string) []string {
	order := append(slices.Clone(hint), BucketNames...)
	order = lo.Uniq(order)

	langs := lo.Uniq(lo.Map(languages, func(lang string, _ int) string {
		return c.resolve(lang)
	}))

	var out []string
	for _, bucket := range order {
		for _, lang := range langs {
			out = append(out, c.words[lang][bucket]...)
		}
	}
	return lo.Uniq(out)
}

// resolve maps a language code to the word list that serves it.
func (c *Corpus) resolve(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := c.words[lang]; ok {
		return lang
	}
	return config.DefaultCorpus
}

// Bucket returns the words of one language and bucket.
func (c *Corpus) Bucket(language, bucket string) []string {
	return slices.Clone(c.words[strings.ToLower(language)][bucket])
}

func bucketKey(lifePath, expression int) string {
	return fmt.Sprintf("%d-%d", lifePath, expression)
}

// SingleBuckets recommends the Expression buckets a single inserted word
// should come from for a (Life Path, Expression) combination.
func (c *Corpus) SingleBuckets(lifePath, expression int) []string {
	return slices.Clone(c.single[bucketKey(lifePath, expression)])
}

// PairBuckets recommends bucket pairs for two inserted words.
func (c *Corpus) PairBuckets(lifePath, expression int) [][2]string {
	return slices.Clone(c.pairs[bucketKey(lifePath, expression)])
}

// Dictionary returns the name-meaning dictionary.
func (c *Corpus) Dictionary() *Dictionary {
	return c.dict
}
