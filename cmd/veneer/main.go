// Command veneer runs a skinned widget app in the terminal. It loads a
// skin layout and an app configuration, wires the Lua action handler
// into the dispatcher, and translates tcell input events into the
// runtime's pointer/key vocabulary.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/go-veneer/veneer/pkg/errors"
	"github.com/go-veneer/veneer/pkg/runtime"
	"github.com/go-veneer/veneer/pkg/script"
	"github.com/go-veneer/veneer/pkg/skin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "veneer: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings reads the optional veneer.yaml next to the binary's
// working directory. Every key can be overridden through VENEER_*
// environment variables.
func loadSettings() *viper.Viper {
	v := viper.New()
	v.SetDefault("skin", "examples/blend/skin.yaml")
	v.SetDefault("app", "examples/blend/app.toml")
	v.SetDefault("verbose", false)
	v.SetConfigName("veneer")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("veneer")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		// Settings file is optional; defaults and env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "veneer: ignoring settings file: %v\n", err)
		}
	}
	return v
}

func run() error {
	v := loadSettings()
	errors.SetHandler(&errors.LogHandler{Verbose: v.GetBool("verbose")})

	sk, err := skin.Load(v.GetString("skin"))
	if err != nil {
		return err
	}
	tr, err := sk.Build()
	if err != nil {
		return err
	}
	rt := runtime.New(tr)

	cfg, err := script.LoadAppConfig(v.GetString("app"))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "loaded app %q\n", cfg.Meta.Name)
	for _, name := range cfg.ActionNames() {
		fmt.Fprintf(os.Stderr, "  registered action: %s\n", name)
	}
	rt.Dispatcher.AddHandler(script.NewLuaHandler(cfg))

	return uiLoop(rt, sk.Name)
}
