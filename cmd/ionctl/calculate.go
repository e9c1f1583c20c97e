package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

func init() {
	var file string
	var validateOnly bool
	var persist bool

	calcCmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate a formulation from a survey JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file required")
			}
			body, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			path := "/v0/formulations"
			if validateOnly {
				path = "/v0/formulations/validate"
			} else if persist {
				path = "/v0/surveys"
			}
			return runCalculate(apiFlag, path, body, os.Stdout)
		},
	}
	calcCmd.Flags().StringVarP(&file, "file", "f", "", "Path to survey record JSON (required)")
	calcCmd.Flags().BoolVar(&validateOnly, "validate-only", false, "Validate without composing a formulation")
	calcCmd.Flags().BoolVar(&persist, "persist", false, "Persist the survey and its result")
	_ = calcCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(calcCmd)
}

func runCalculate(apiURL, path string, body []byte, out io.Writer) error {
	resp, err := resty.New().R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(apiURL + path)
	if err != nil {
		return err
	}
	// 422 still carries a useful validation payload; print it and fail.
	if resp.IsError() {
		_, _ = fmt.Fprintln(out, string(resp.Body()))
		return fmt.Errorf("http %d", resp.StatusCode())
	}
	_, err = fmt.Fprintln(out, string(resp.Body()))
	return err
}
