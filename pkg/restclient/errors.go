package restclient

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/restdata/restdata/pkg/restdata"
	"github.com/restdata/restdata/pkg/util"
)

// Message is one entry of an error response's message list.
type Message struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text"`
}

// ResponseError reports a non-2xx response.
type ResponseError struct {
	StatusCode int
	Status     string
	Messages   []Message
}

func (e *ResponseError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("request failed: %s", e.Status)
	}
	texts := make([]string, len(e.Messages))
	for i, m := range e.Messages {
		texts[i] = m.Text
	}
	return fmt.Sprintf("request failed: %s: %s", e.Status, strings.Join(texts, "; "))
}

// Is reports ErrNotFound for 404 responses.
func (e *ResponseError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

func (c *Client) parseError(resp *http.Response, body string) error {
	e := &ResponseError{StatusCode: resp.StatusCode, Status: resp.Status}
	if e.Status == "" {
		e.Status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	e.Messages = parseMessages(c.decoder, body)
	c.logger.Warn("request returned an error", "status", resp.StatusCode, "messages", len(e.Messages))
	c.logger.Debug("error response body", "body", util.TruncateBody(body, 512))
	return e
}

// parseMessages decodes <response><messages><msg type="...">text</msg>...
// bodies. Bodies in any other shape yield no messages.
func parseMessages(d *restdata.Decoder, body string) []Message {
	values, err := d.LoadAll(body, "messages/msg")
	if err != nil {
		return nil
	}
	var msgs []Message
	for _, v := range values {
		msg, _ := v.Record().Lookup("msg")
		switch msg.Kind() {
		case restdata.KindScalar:
			msgs = append(msgs, Message{Text: msg.String()})
		case restdata.KindMapping:
			r := msg.Record()
			msgs = append(msgs, Message{Type: r.Text("type"), Text: r.Text(restdata.TextKey)})
		}
	}
	return msgs
}
