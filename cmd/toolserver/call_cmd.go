package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/habiliai/toolserver/entity"
	"github.com/habiliai/toolserver/errors"
	"github.com/habiliai/toolserver/internal/msgutils"
	"github.com/spf13/cobra"
)

func newCallCmd(root *rootFlags) *cobra.Command {
	kvargs := &struct {
		messagesFile string
	}{}

	cmd := &cobra.Command{
		Use:   "call <@tool(arg) | tool [arg...]>",
		Short: "Run one tool locally and print its result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := parseCallArgs(args)
			if err != nil {
				return err
			}

			messages, err := readMessages(kvargs.messagesFile)
			if err != nil {
				return err
			}

			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			s, _, err := newToolServer(cfg)
			if err != nil {
				return err
			}

			entry, ok := s.Registry().Lookup(inv.Name)
			if !ok {
				return errors.NotFoundf("@%s not found - such as tool does not exist", inv.Name)
			}

			result, err := entry.Func(cmd.Context(), messages, inv.Arg)
			if err != nil {
				return errors.Wrapf(errors.Mark(err, errors.ErrToolExecution), "@%s error", inv.Name)
			}

			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kvargs.messagesFile, "messages", "m", "", "JSON file holding the conversation history")

	return cmd
}

// parseCallArgs accepts either a single "@tool(arg)" invocation or a tool
// name followed by the words of its argument.
func parseCallArgs(args []string) (msgutils.Invocation, error) {
	if len(args) == 1 && strings.HasPrefix(args[0], "@") {
		inv, ok := msgutils.ParseInvocation(args[0])
		if !ok {
			return msgutils.Invocation{}, errors.Invalidf("cannot parse invocation %q", args[0])
		}
		return inv, nil
	}

	return msgutils.Invocation{
		Name: strings.TrimPrefix(args[0], "@"),
		Arg:  strings.Join(args[1:], " "),
	}, nil
}

func readMessages(path string) ([]entity.Message, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read messages file %s", path)
	}

	var messages []entity.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, errors.Wrapf(err, "failed to parse messages file %s", path)
	}

	return messages, nil
}
