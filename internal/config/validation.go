package config

import (
	"fmt"

	"github.com/law-makers/itemscrape/internal/utils/output"
)

func validate(c *Config) error {
	if _, err := output.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 0 and %d", MaxWorkers)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache size must be > 0")
	}
	if c.EvalTimeout <= 0 || c.EvalTimeout > MaxEvalTimeout {
		return fmt.Errorf("eval timeout must be > 0 and <= %s", MaxEvalTimeout)
	}
	if c.PagesDir == "" || c.ItemsDir == "" {
		return fmt.Errorf("pages and items directories must be set")
	}
	return nil
}
