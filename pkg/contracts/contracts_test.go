package contracts

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
)

// TestRSS2JSONFeedContract_HasDocumentedShape validates the recorded proxy
// response against the fields rss2json documents for api.json.
func TestRSS2JSONFeedContract_HasDocumentedShape(t *testing.T) {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(RSS2JSONFeedContract), &payload); err != nil {
		t.Fatalf("contract is not valid JSON: %v", err)
	}

	if payload["status"] != "ok" {
		t.Errorf("status should be ok, got %v", payload["status"])
	}

	feed, ok := payload["feed"].(map[string]interface{})
	if !ok {
		t.Fatal("feed object missing")
	}
	for _, field := range []string{"url", "title", "link", "author", "description", "image"} {
		if _, exists := feed[field]; !exists {
			t.Errorf("feed missing documented field %q", field)
		}
	}

	items, ok := payload["items"].([]interface{})
	if !ok || len(items) == 0 {
		t.Fatal("items array missing or empty")
	}
	itemFields := []string{"title", "pubDate", "link", "guid", "author", "thumbnail", "description", "content", "enclosure", "categories"}
	for i, raw := range items {
		item := raw.(map[string]interface{})
		for _, field := range itemFields {
			if _, exists := item[field]; !exists {
				t.Errorf("item %d missing documented field %q", i, field)
			}
		}
		if _, ok := item["categories"].([]interface{}); !ok {
			t.Errorf("item %d categories should be an array", i)
		}
		// rss2json emits pubDate as "YYYY-MM-DD hh:mm:ss"
		if pd, _ := item["pubDate"].(string); len(pd) != len("2006-01-02 15:04:05") {
			t.Errorf("item %d pubDate has unexpected format %q", i, pd)
		}
	}
}

func TestRSS2JSONErrorContract_IsNotOK(t *testing.T) {
	var payload struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(RSS2JSONErrorContract), &payload); err != nil {
		t.Fatalf("contract is not valid JSON: %v", err)
	}

	if payload.Status == "ok" || payload.Message == "" {
		t.Errorf("error contract should carry a non-ok status and a message, got %+v", payload)
	}
}

// TestMediumRSSContract_IsWellFormedRSS checks the recorded feed is RSS 2.0
// with the content:encoded extension Medium relies on.
func TestMediumRSSContract_IsWellFormedRSS(t *testing.T) {
	var doc struct {
		XMLName xml.Name `xml:"rss"`
		Version string   `xml:"version,attr"`
		Items   []struct {
			Title   string `xml:"title"`
			Link    string `xml:"link"`
			Content string `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
		} `xml:"channel>item"`
	}
	if err := xml.Unmarshal([]byte(MediumRSSContract), &doc); err != nil {
		t.Fatalf("contract is not valid XML: %v", err)
	}

	if doc.Version != "2.0" {
		t.Errorf("expected RSS 2.0, got %q", doc.Version)
	}
	if len(doc.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(doc.Items))
	}
	if !strings.Contains(doc.Items[0].Content, "<img") {
		t.Error("content:encoded should carry the article HTML with its cover image")
	}
}
