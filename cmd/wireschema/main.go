// Command wireschema writes JSON schemas for the frames exchanged with the
// game server, so client and server can be checked against one contract.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/monodyle/tokyo-go/model"
)

// frame is one schema file and the Go type it is reflected from.
type frame struct {
	file        string
	value       any
	title       string
	description string
}

var frames = []frame{
	{"game_state.schema.json", new(model.GameState), "Game State", "Snapshot pushed by the server in every state frame."},
	{"command.schema.json", new(model.CommandFrame), "Game Command", `Single action sent by a bot, adjacently tagged by "e".`},
}

func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "", "directory to write the JSON schemas into")
	flag.Parse()

	if outDir == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", outDir, err)
		os.Exit(1)
	}

	reflector := jsonschema.Reflector{AllowAdditionalProperties: true}
	for _, f := range frames {
		schema := reflector.Reflect(f.value)
		schema.Title = f.title
		schema.Description = f.description

		if err := replaceFile(filepath.Join(outDir, f.file), schema); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", f.file, err)
			os.Exit(1)
		}
	}
}

// replaceFile writes v as indented JSON next to path and renames it into
// place, so readers never see a half-written schema.
func replaceFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
