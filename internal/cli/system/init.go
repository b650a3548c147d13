package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing storage before initialization."`
	Source string `help:"Storage path or connection string to copy data from."`
	Import string `help:"Exported state document (JSON) to import, including legacy exports." type:"existingfile"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Source != "" && c.Import != "" {
		return fmt.Errorf("--source and --import cannot be used together")
	}

	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized habitual storage at: %s\n", ctx.Store.GetConfigPath())

	switch {
	case c.Source != "":
		ctx.Printf("Copying data from: %s\n", c.Source)
		data, err := readSource(c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		if err := c.adopt(ctx, data); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	case c.Import != "":
		data, err := os.ReadFile(c.Import)
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}
		if err := c.adopt(ctx, data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		ctx.Printf("Imported state from: %s\n", c.Import)
	default:
		if err := ctx.State.Load(); err != nil {
			return err
		}
		if ctx.State.Seeded() {
			if err := ctx.State.Save(); err != nil {
				return err
			}
			ctx.Println("Created the default dataset.")
		}
	}

	st := ctx.State.State()
	ctx.Printf("  %d habits, %d media items\n", len(st.Habits), len(st.Media))
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if !storage.IsFileBacked(ctx.Store) {
		return fmt.Errorf("--force only applies to file storage")
	}
	path := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == path {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing storage: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing storage: %w", err)
		}
		ctx.Printf("Deleted existing storage at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing storage: %w", err)
	}
	return nil
}

// adopt stores data as the current document, then reloads it so legacy
// documents are upgraded and written back in the current shape.
func (c *InitCmd) adopt(ctx *cli.Context, data []byte) error {
	if err := ctx.Store.SaveState(data); err != nil {
		return err
	}
	if err := ctx.State.Load(); err != nil {
		return err
	}
	if ctx.State.Seeded() {
		return fmt.Errorf("source document could not be parsed")
	}
	return ctx.State.Save()
}

func readSource(config string) ([]byte, error) {
	src, err := storage.New(config)
	if err != nil {
		return nil, err
	}
	if err := src.Load(); err != nil {
		return nil, fmt.Errorf("failed to load source storage: %w", err)
	}
	defer src.Close()

	data, err := src.LoadState()
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("source storage holds no data")
	}
	return data, nil
}
