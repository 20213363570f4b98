// Package users holds the user records listed from the Auth service and
// the renderers that print them.
package users

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// NoEmail is printed in place of an absent email address.
const NoEmail = "(no email)"

// Record is the projection of an Auth user account that fbadmin prints.
// An empty Email means the account has no email address.
type Record struct {
	UID   string `yaml:"uid" json:"uid"`
	Email string `yaml:"email,omitempty" json:"email,omitempty"`
}

// DisplayEmail returns the email or NoEmail when absent.
func (r Record) DisplayEmail() string {
	if r.Email == "" {
		return NoEmail
	}
	return r.Email
}

// Page is one batch of records in service order.
type Page struct {
	Users         []Record `yaml:"users" json:"users"`
	NextPageToken string   `yaml:"nextPageToken,omitempty" json:"nextPageToken,omitempty"`
}

// Len returns the number of records, treating a nil page as empty.
func (p *Page) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Users)
}

// Format selects a renderer.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML, FormatTable:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Line renders a record as a single text line.
func Line(r Record) string {
	return fmt.Sprintf("  [User UID]: %s, [Email]: %s", r.UID, r.DisplayEmail())
}

// view is the rendered shape of a record; Email is never empty.
type view struct {
	UID   string `yaml:"uid" json:"uid"`
	Email string `yaml:"email" json:"email"`
}

func views(page *Page) []view {
	out := make([]view, 0, page.Len())
	if page == nil {
		return out
	}
	for _, r := range page.Users {
		out = append(out, view{UID: r.UID, Email: r.DisplayEmail()})
	}
	return out
}

// Write prints page to w in the given format.
func Write(w io.Writer, page *Page, format Format) error {
	switch format {
	case FormatText, "":
		if page == nil {
			return nil
		}
		for _, r := range page.Users {
			if _, err := fmt.Fprintln(w, Line(r)); err != nil {
				return err
			}
		}
		return nil

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(views(page)); err != nil {
			return fmt.Errorf("failed to encode users JSON: %w", err)
		}
		return nil

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views(page)); err != nil {
			return fmt.Errorf("failed to encode users YAML: %w", err)
		}
		return enc.Close()

	case FormatTable:
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"UID", "EMAIL"})
		table.SetAutoWrapText(false)
		table.SetAutoFormatHeaders(true)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetCenterSeparator("")
		table.SetColumnSeparator("")
		table.SetRowSeparator("")
		table.SetHeaderLine(false)
		table.SetBorder(false)
		table.SetTablePadding("\t")
		table.SetNoWhiteSpace(true)
		for _, v := range views(page) {
			table.Append([]string{v.UID, v.Email})
		}
		table.Render()
		return nil

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
