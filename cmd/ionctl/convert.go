package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

func init() {
	var items []string

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert intake values to mg",
		Long:  "Each --item is ELECTROLYTE=VALUE, e.g. --item sodium=7 --item potassium=3.5",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(items) == 0 {
				return fmt.Errorf("at least one --item required")
			}
			return runConvert(apiFlag, items, os.Stdout)
		},
	}
	convertCmd.Flags().StringArrayVarP(&items, "item", "i", nil, "Intake item ELECTROLYTE=VALUE (repeatable)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(apiURL string, items []string, out io.Writer) error {
	type item struct {
		ID          string `json:"id"`
		Value       string `json:"value"`
		Electrolyte string `json:"electrolyte"`
	}
	req := struct {
		Items []item `json:"items"`
	}{}
	for i, raw := range items {
		electrolyte, value, ok := strings.Cut(raw, "=")
		if !ok {
			return fmt.Errorf("item %q must be ELECTROLYTE=VALUE", raw)
		}
		req.Items = append(req.Items, item{
			ID:          fmt.Sprintf("item-%d", i+1),
			Value:       value,
			Electrolyte: electrolyte,
		})
	}
	body, _ := json.Marshal(req)

	resp, err := resty.New().R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(apiURL + "/v0/intake/convert")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.Body())
	}
	_, err = fmt.Fprintln(out, string(resp.Body()))
	return err
}
