package post

import (
	"fmt"

	"github.com/chirpkv/chirp/cmd/util"
	"github.com/chirpkv/chirp/lib/engine"
	"github.com/chirpkv/chirp/lib/record"
	"github.com/chirpkv/chirp/rpc/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	rpcEngine engine.IEngine

	// PostCommands represents the post command group
	PostCommands = &cobra.Command{
		Use:               "post",
		Short:             "Perform record store operations",
		PersistentPreRunE: setupPostClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common RPC flags to the post command
	util.SetupRPCClientFlags(PostCommands)

	// Set default shard ID for record operations
	PostCommands.PersistentFlags().Int("shard", 100, util.WrapString("ID of the shard to connect to"))

	// The identity used as author or requester, 32 bytes hex encoded
	PostCommands.PersistentFlags().String("identity", "", util.WrapString("Identity of the caller as 64 hex characters. Used as the author for create and as the requester for update and delete"))

	// Add subcommands
	PostCommands.AddCommand(createCmd)
	PostCommands.AddCommand(updateCmd)
	PostCommands.AddCommand(getCmd)
	PostCommands.AddCommand(delCmd)
	PostCommands.AddCommand(listCmd)
}

// setupPostClient initializes the RPC engine client
func setupPostClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()
	shardId := util.GetShardID()

	// Get serializer and transport
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	// Create the record store client
	rpcEngine, err = client.NewRPCEngine(
		shardId,
		*config,
		t,
		s,
	)

	return err
}

// getIdentity parses the identity flag
func getIdentity() (record.Identity, error) {
	s := viper.GetString("identity")
	if s == "" {
		return record.Identity{}, fmt.Errorf("no identity specified (use --identity with 64 hex characters)")
	}
	return record.ParseIdentity(s)
}
