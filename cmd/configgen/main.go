package main

import (
	"flag"
	"log"

	"github.com/danmuck/timectl/internal/config"
	"github.com/danmuck/timectl/internal/store"
)

func main() {
	output := flag.String("output", "dataset.toml", "output path for dataset config template")
	validate := flag.Bool("validate", false, "validate an existing dataset config")
	input := flag.String("input", "dataset.toml", "dataset config path for validation or init")
	initTables := flag.Bool("init", false, "initialize the CSV backing tables from a dataset config")
	force := flag.Bool("force", false, "overwrite existing files")
	flag.Parse()

	if *validate {
		if _, err := config.LoadDatasetConfig(*input); err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated dataset config at %s", *input)
		return
	}

	if *initTables {
		cfg, err := config.LoadDatasetConfig(*input)
		if err != nil {
			log.Fatal(err)
		}
		st := store.New(cfg.ProjectsFile, cfg.TimesheetFile)
		if err := st.InitProjects(store.DefaultProjectHeader, cfg.Rows(), *force); err != nil {
			log.Fatal(err)
		}
		if err := st.InitTimesheet(*force); err != nil {
			log.Fatal(err)
		}
		log.Printf("Initialized %s and %s", cfg.ProjectsFile, cfg.TimesheetFile)
		return
	}

	if err := config.WriteTemplate(*output, "dataset", *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote dataset config template to %s", *output)
}
