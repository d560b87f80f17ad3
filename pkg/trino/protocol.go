package trino

import (
	"encoding/json"
	"io"

	"github.com/junzis/opensky-go/pkg/opensky"
)

// statementResponse is the engine's answer to a statement submission or
// a next-page fetch. All fields are optional; the presence of Error is
// authoritative and short-circuits processing of the other fields.
type statementResponse struct {
	ID      string              `json:"id"`
	InfoURI string              `json:"infoUri"`
	NextURI string              `json:"nextUri"`
	Columns []columnDef         `json:"columns"`
	Data    [][]any             `json:"data"`
	Stats   *statementStats     `json:"stats"`
	Error   *statementErrorInfo `json:"error"`
}

// columnDef is a declared result column: name plus engine type tag.
type columnDef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type statementStats struct {
	State              string   `json:"state"`
	ProgressPercentage *float64 `json:"progressPercentage"`
}

type statementErrorInfo struct {
	Message   string `json:"message"`
	ErrorName string `json:"errorName"`
}

// tokenResponse is the identity endpoint's answer to a password grant.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// decodeStatement parses a statement response. Numbers are kept as
// json.Number so integer cells survive without float rounding.
func decodeStatement(r io.Reader) (*statementResponse, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var resp statementResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, opensky.Wrap(opensky.KindParse, "decode statement response", err)
	}
	return &resp, nil
}
