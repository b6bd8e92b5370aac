package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/ats-scorer/internal/services"
)

func newKeywordsCmd() *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Print the keyword set of a document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stack := loadScoringStack()

			text, err := readDocument(cmd.Context(), services.NewTextExtractor(nil), inputFile)
			if err != nil {
				return err
			}

			for _, keyword := range stack.extractor.ExtractKeywords(text).Sorted() {
				fmt.Fprintln(cmd.OutOrStdout(), keyword)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "in", "i", "", "Path to a PDF, DOCX or text file")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
