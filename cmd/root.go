package cmd

import (
	"fmt"
	"os"

	"github.com/chirpkv/chirp/cmd/post"
	"github.com/chirpkv/chirp/cmd/serve"
	"github.com/chirpkv/chirp/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "chirp",
		Short: "authenticated record store",
		Long: fmt.Sprintf(`chirp (v%s)

A small record store written in Go. Every record carries its author's
identity, and only the author can update or delete it.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of chirp",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("chirp v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(post.PostCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("serializer to use (json, gob, binary)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "http", util.WrapString("transport to use (http)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
