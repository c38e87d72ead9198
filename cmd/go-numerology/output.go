package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"github.com/tartampluch/go-numerology/internal/compat"
	"github.com/tartampluch/go-numerology/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}
	return nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, config.TabMinWidth, config.TabWidth, config.TabPadding, config.TabPadChar, 0)
}

// row writes one tab separated line.
func row(w io.Writer, cells ...any) {
	parts := lo.Map(cells, func(c any, _ int) string { return fmt.Sprint(c) })
	_, _ = fmt.Fprintln(w, strings.Join(parts, "\t"))
}

func years(scores []compat.YearScore) string {
	return strings.Join(lo.Map(scores, func(s compat.YearScore, _ int) string {
		return strconv.Itoa(s.Year)
	}), ", ")
}
