package main

import (
	"fmt"
	flag "github.com/spf13/pflag"
	"os"
	"qrscan/internal/di"
	"qrscan/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVarP(&flags.ConfigPath, "config", "c", "configs/config.yml", "path to the YAML config file")
	flag.BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to the console")
	flag.Parse()

	app, cleanup, err := di.InitApp(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "qrscan: %s\n", err)
		os.Exit(1)
	}

	err = app.Run()
	cleanup()
	app.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "qrscan: %s\n", err)
		os.Exit(1)
	}
}
