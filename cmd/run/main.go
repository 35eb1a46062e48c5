// Command run diagonalizes periodic XXZ chains of increasing size, using the
// spin block structure of the hamiltonian. Results are written per chain size
// under the run directory, and finished sizes are skipped on restart.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"spinhalf"
	"spinhalf/cache"
	"spinhalf/mat"
)

const (
	fnameDone       = "done.txt"
	fnameStatistics = "statistics.json"
)

var (
	runDir     = flag.String("d", filepath.Join("runs", "spinhalf"), "run directory")
	configPath = flag.String("c", "", "yaml configuration file")
)

type Config struct {
	// MaxN is the largest chain size to solve.
	MaxN int `yaml:"maxN"`
	// Delta is the XXZ anisotropy.
	Delta float64 `yaml:"delta"`
	// Field is the longitudinal field strength.
	Field float64 `yaml:"field"`
	// CacheDir holds memoized matrices shared between runs.
	CacheDir string `yaml:"cacheDir"`
}

func readConfig(fpath string) (Config, error) {
	cfg := Config{MaxN: 8, Delta: 1}
	if fpath == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(fpath)
	if err != nil {
		return Config{}, errors.Wrap(err, "")
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "")
	}
	return cfg, nil
}

type Statistics struct {
	RunID string
	N     int
	Delta float64
	Field float64

	// SectorGround holds the lowest eigenvalue of every total spin block,
	// from j = N/2 down to j = -N/2.
	SectorGround []float64
	// GroundEnergy is the lowest eigenvalue over all blocks.
	GroundEnergy float64
}

func solveBlocks(c *cache.Cache, cfg Config, n int) ([]float64, error) {
	h, err := c.Memo(cache.Key("xxz", n, cfg.Delta, cfg.Field), func() (*mat.COO, error) {
		return spinhalf.HeisenbergXXZ(n, cfg.Delta, cfg.Field)
	})
	if err != nil {
		return nil, err
	}
	u, err := c.Memo(cache.Key("u", n), func() (*mat.COO, error) {
		return spinhalf.SimilarityTransform(n)
	})
	if err != nil {
		return nil, err
	}
	b, err := spinhalf.TransformOperator(u, h)
	if err != nil {
		return nil, err
	}

	grounds := make([]float64, 0, n+1)
	offset := 0
	for ups := n; ups >= 0; ups-- {
		size := spinhalf.SectorDim(n, ups)
		blk := b.Slice([2]int{offset, offset + size}, [2]int{offset, offset + size})
		vvs := blk.Eigen()
		grounds = append(grounds, real(vvs[0].Val))
		offset += size
	}
	return grounds, nil
}

func solve(dir, runID string, c *cache.Cache, cfg Config, n int) error {
	donePath := filepath.Join(dir, fnameDone)
	if _, err := os.Stat(donePath); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return errors.Wrap(err, "")
	}

	grounds, err := solveBlocks(c, cfg, n)
	if err != nil {
		return errors.Wrap(err, "")
	}
	stats := Statistics{
		RunID:        runID,
		N:            n,
		Delta:        cfg.Delta,
		Field:        cfg.Field,
		SectorGround: grounds,
		GroundEnergy: grounds[0],
	}
	for _, e := range grounds {
		if e < stats.GroundEnergy {
			stats.GroundEnergy = e
		}
	}

	sb, err := json.Marshal(stats)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if err := os.WriteFile(filepath.Join(dir, fnameStatistics), sb, 0644); err != nil {
		return errors.Wrap(err, "")
	}
	if err := os.WriteFile(donePath, nil, 0644); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

func gather(dir string) ([]Statistics, error) {
	stats := make([]Statistics, 0)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	for _, ent := range entries {
		if _, err := strconv.Atoi(ent.Name()); err != nil {
			continue
		}
		sb, err := os.ReadFile(filepath.Join(dir, ent.Name(), fnameStatistics))
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("%#v", ent))
		}
		var s Statistics
		if err := json.Unmarshal(sb, &s); err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("%#v", ent))
		}
		stats = append(stats, s)
	}
	return stats, nil
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	if err := mainWithErr(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func mainWithErr() error {
	cfg, err := readConfig(*configPath)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if err := os.MkdirAll(*runDir, os.ModePerm); err != nil {
		return errors.Wrap(err, "")
	}
	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		return errors.Wrap(err, "")
	}

	runID := uuid.NewString()
	log.Printf("run %s delta %f field %f", runID, cfg.Delta, cfg.Field)

	for n := 1; n <= cfg.MaxN; n++ {
		dir := filepath.Join(*runDir, strconv.Itoa(n))
		if err := solve(dir, runID, c, cfg, n); err != nil {
			return errors.Wrap(err, fmt.Sprintf("%d", n))
		}
		log.Printf("%d", n)
	}

	stats, err := gather(*runDir)
	if err != nil {
		return errors.Wrap(err, "")
	}
	fmt.Printf("n,delta,field,e0\n")
	for _, s := range stats {
		fmt.Printf("%d,%f,%f,%f\n", s.N, s.Delta, s.Field, s.GroundEnergy)
	}
	return nil
}
