package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hannes-br/gtfsutils"
)

var boundsCmd = &cobra.Command{
	Use:   "bounds <src>",
	Short: "Print the bounding box of all stops",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := gtfsutils.LoadSubset(args[0], []string{"stops"})
		if err != nil {
			return err
		}
		bbox, err := gtfsutils.BoundingBox(store)
		if err != nil {
			return err
		}
		fmt.Printf("[%g, %g, %g, %g]\n", bbox[0], bbox[1], bbox[2], bbox[3])
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <src>",
	Short: "Print a summary of a GTFS dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := gtfsutils.Load(args[0])
		if err != nil {
			return err
		}
		return gtfsutils.Info(os.Stdout, store)
	},
}
