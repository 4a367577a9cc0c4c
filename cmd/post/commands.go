package post

import (
	"fmt"

	"github.com/chirpkv/chirp/lib/record"
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
)

var (
	createCmd = &cobra.Command{
		Use:   "create [content]",
		Short: "Creates a new record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			author, err := getIdentity()
			if err != nil {
				return err
			}
			topic, _ := cmd.Flags().GetString("topic")

			// Generate a sortable unique key unless one was given
			key, _ := cmd.Flags().GetString("key")
			if key == "" {
				key = ksuid.New().String()
			}

			rec, err := rpcEngine.Create(key, author, topic, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("created key=%s\n", key)
			printRecord(key, rec)
			return nil
		},
	}
	updateCmd = &cobra.Command{
		Use:   "update [key] [content]",
		Short: "Updates the topic and content of an existing record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			requester, err := getIdentity()
			if err != nil {
				return err
			}
			topic, _ := cmd.Flags().GetString("topic")

			rec, err := rpcEngine.Update(args[0], topic, args[1], requester)
			if err != nil {
				return err
			}
			fmt.Println("updated successfully")
			printRecord(args[0], rec)
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the record for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			rec, ok, err := rpcEngine.Get(key)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("key=%s, found=false\n", key)
				return nil
			}
			printRecord(key, rec)
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requester, err := getIdentity()
			if err != nil {
				return err
			}
			if err := rpcEngine.Delete(args[0], requester); err != nil {
				return err
			}
			fmt.Println("deleted successfully")
			return nil
		},
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists records, optionally filtered by author and topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filters []record.Filter

			if author, _ := cmd.Flags().GetString("author"); author != "" {
				id, err := record.ParseIdentity(author)
				if err != nil {
					return err
				}
				filters = append(filters, record.ByAuthor(id))
			}

			if topic, _ := cmd.Flags().GetString("topic"); topic != "" {
				filters = append(filters, record.ByTopic(topic))
			}

			records, err := rpcEngine.List(filters...)
			if err != nil {
				return err
			}

			fmt.Printf("%d record(s)\n", len(records))
			for _, kr := range records {
				printRecord(kr.Key, kr.Record)
			}
			return nil
		},
	}
)

func init() {
	createCmd.Flags().String("key", "", "Key for the new record (default: generated)")
	createCmd.Flags().String("topic", "", "Topic of the record (50 characters maximum)")
	updateCmd.Flags().String("topic", "", "New topic of the record (50 characters maximum)")
	listCmd.Flags().String("author", "", "Only list records by this author (64 hex characters)")
	listCmd.Flags().String("topic", "", "Only list records whose topic starts with this prefix")
}

// printRecord prints a single record to stdout
func printRecord(key string, rec record.Record) {
	fmt.Printf("key=%s author=%s ts=%d topic=%q content=%q\n",
		key, rec.Author, rec.Timestamp, rec.Topic, rec.Content)
}
