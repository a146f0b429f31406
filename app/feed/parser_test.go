package feed

import (
	"testing"
)

func TestParseRSS2(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <item>
      <title>  Test Item 1  </title>
      <link>https://example.com/item1</link>
      <description>Test Item 1 Description</description>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Test Item 2</title>
      <link>https://example.com/item2</link>
      <content:encoded><![CDATA[<p>Encoded body</p>]]></content:encoded>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	entries, err := parser.Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(entries))
	}

	first := entries[0]
	if first.Link != "https://example.com/item1" {
		t.Errorf("Expected link 'https://example.com/item1', got: %s", first.Link)
	}
	if first.Summary != "Test Item 1 Description" {
		t.Errorf("Expected summary from description, got: %s", first.Summary)
	}
	if first.Published != "Mon, 03 Jul 2023 10:00:00 GMT" {
		t.Errorf("Expected raw published text, got: %s", first.Published)
	}

	// Summary falls back to the content body when there is no description
	if entries[1].Summary != "<p>Encoded body</p>" {
		t.Errorf("Expected summary from content, got: %s", entries[1].Summary)
	}
	if entries[1].Published != "" {
		t.Errorf("Expected empty published text, got: %s", entries[1].Published)
	}
}

func TestParseAtom_UpdatedFallback(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <link href="https://example.com"/>
  <updated>2023-07-03T12:00:00Z</updated>
  <id>urn:uuid:1234567890</id>
  <entry>
    <title>Test Entry</title>
    <link href="https://example.com/entry1"/>
    <id>urn:uuid:entry-1</id>
    <updated>2023-07-03T10:00:00Z</updated>
    <summary>Entry summary</summary>
  </entry>
</feed>`

	parser := NewParser()
	entries, err := parser.Run([]byte(atomData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got: %d", len(entries))
	}

	entry := entries[0]
	if entry.Title != "Test Entry" {
		t.Errorf("Expected title 'Test Entry', got: %s", entry.Title)
	}
	if entry.Link != "https://example.com/entry1" {
		t.Errorf("Expected link 'https://example.com/entry1', got: %s", entry.Link)
	}
	if entry.Summary != "Entry summary" {
		t.Errorf("Expected summary 'Entry summary', got: %s", entry.Summary)
	}
	if entry.Published != "2023-07-03T10:00:00Z" {
		t.Errorf("Expected published to fall back to updated, got: %s", entry.Published)
	}
}

func TestParseInvalidFeed(t *testing.T) {
	parser := NewParser()
	_, err := parser.Run([]byte("invalid xml"))

	if err == nil {
		t.Error("Expected error for invalid XML")
	}
}

func TestEntryArticle_Trims(t *testing.T) {
	entry := Entry{
		Title:     "  Padded title \n",
		Link:      " https://example.com/a ",
		Summary:   "\tSummary ",
		Published: " Mon, 03 Jul 2023 ",
	}

	article := entry.Article("Source A")

	if article.Title != "Padded title" {
		t.Errorf("Expected trimmed title, got: %q", article.Title)
	}
	if article.Link != "https://example.com/a" {
		t.Errorf("Expected trimmed link, got: %q", article.Link)
	}
	if article.Summary != "Summary" {
		t.Errorf("Expected trimmed summary, got: %q", article.Summary)
	}
	if article.Published != " Mon, 03 Jul 2023 " {
		t.Errorf("Expected published text untouched, got: %q", article.Published)
	}
	if article.Source != "Source A" {
		t.Errorf("Expected source 'Source A', got: %s", article.Source)
	}
}
