package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"github.com/shopspring/decimal"

	"github.com/peizhen/bookfair/internal/catalog"
)

// seedSchema constrains catalog seed data: positive price, score in
// [0, 10], required display fields, in-stock by default. Seed files are
// unified against it so a bad seed fails at load, not at render time.
const seedSchema = `
#Book: {
	id?:      string & !=""
	name:     string & !=""
	author:   string & !=""
	press:    string | *""
	category: string | *""
	intro:    string | *""
	cover:    string | *""
	price:    number & >0
	score:    number & >=0 & <=10
	inStock:  bool | *true
}
books: [...#Book]
`

// seedBook is the decoded form of one CUE seed entry.
type seedBook struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Author   string  `json:"author"`
	Press    string  `json:"press"`
	Category string  `json:"category"`
	Intro    string  `json:"intro"`
	Cover    string  `json:"cover"`
	Price    float64 `json:"price"`
	Score    float64 `json:"score"`
	InStock  bool    `json:"inStock"`
}

// LoadSeed loads and validates catalog seed data from a directory of CUE
// files. Entries without an id get one assigned during catalog.Store.Load.
func LoadSeed(dir string) ([]catalog.Book, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("seed directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("seed path %s: not a directory", dir)
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("seed directory %s: no CUE instances", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading seed files: %w", inst.Err)
	}

	ctx := cuecontext.New()
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("building seed value: %w", err)
	}

	schema := ctx.CompileString(seedSchema)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling seed schema: %w", err)
	}

	unified := value.Unify(schema)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validating seed: %w", err)
	}

	booksVal := unified.LookupPath(cue.ParsePath("books"))
	if !booksVal.Exists() {
		return nil, fmt.Errorf("seed directory %s: no \"books\" list", dir)
	}

	var seeds []seedBook
	if err := booksVal.Decode(&seeds); err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}

	books := make([]catalog.Book, len(seeds))
	for i, sb := range seeds {
		books[i] = catalog.Book{
			ID:       sb.ID,
			Name:     sb.Name,
			Author:   sb.Author,
			Press:    sb.Press,
			Category: sb.Category,
			Intro:    sb.Intro,
			Cover:    sb.Cover,
			Price:    decimal.NewFromFloat(sb.Price),
			Score:    decimal.NewFromFloat(sb.Score),
			InStock:  sb.InStock,
		}
	}
	return books, nil
}
