package sheets

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"cyber-oasis/internal/models"
)

// ErrUnavailable wraps every failure talking to the spreadsheet.
var ErrUnavailable = errors.New("sheet store unavailable")

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}

func (c *Client) readAll(ctx context.Context, a1 string) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, a1).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *Client) appendRow(ctx context.Context, a1 string, row []interface{}) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, a1, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (c *Client) updateRow(ctx context.Context, a1 string, row []interface{}) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, a1, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (c *Client) tabExists(ctx context.Context) (bool, error) {
	ss, err := c.srv.Spreadsheets.Get(c.spreadsheetID).
		Fields(googleapi.Field("sheets.properties.title")).
		Context(ctx).
		Do()
	if err != nil {
		return false, err
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == c.sheetName {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) addTab(ctx context.Context) error {
	req := &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			AddSheet: &sheetsv4.AddSheetRequest{
				Properties: &sheetsv4.SheetProperties{Title: c.sheetName},
			},
		}},
	}
	_, err := c.srv.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	return err
}

// EnsureHeaders creates the tab when missing and rewrites both header rows.
// Concurrent callers may both write; the content is identical, so the last
// write wins harmlessly.
func (c *Client) EnsureHeaders(ctx context.Context) error {
	ok, err := c.tabExists(ctx)
	if err != nil {
		return unavailable("get spreadsheet", err)
	}
	if !ok {
		if err := c.addTab(ctx); err != nil {
			return unavailable("add sheet "+c.sheetName, err)
		}
	}
	for _, t := range []table{registrationTable, contactTable} {
		row := make([]interface{}, len(t.headers))
		for i, h := range t.headers {
			row[i] = h
		}
		if err := c.updateRow(ctx, t.headerRange(c.sheetName), row); err != nil {
			return unavailable("write "+string(t.kind)+" headers", err)
		}
	}
	return nil
}

// Append writes rec as a new row at the end of its table. Existing rows
// are never overwritten.
func (c *Client) Append(ctx context.Context, rec models.Record) error {
	t, row, err := encode(rec)
	if err != nil {
		return err
	}
	if err := c.EnsureHeaders(ctx); err != nil {
		return err
	}
	if err := c.appendRow(ctx, t.columns(c.sheetName), row); err != nil {
		return unavailable("append "+string(t.kind), err)
	}
	return nil
}

// ReadAll returns every row of the table, header row at index 0. Trailing
// empty cells are not padded; rows may be shorter than the header.
func (c *Client) ReadAll(ctx context.Context, kind models.TableKind) ([][]string, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	values, err := c.readAll(ctx, t.columns(c.sheetName))
	if err != nil {
		return nil, unavailable("read "+string(kind), err)
	}
	rows := make([][]string, len(values))
	for i, v := range values {
		row := make([]string, len(v))
		for j := range v {
			row[j] = get(v, j)
		}
		rows[i] = row
	}
	return rows, nil
}

// ---------- helpers ----------

func get(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}
