// Package contracts holds recorded upstream payloads that folio's Medium
// clients are tested against.
//
// The payloads mirror what the real services return so that tests using
// fake servers stay honest about field names and formats.
package contracts

// RSS2JSONFeedContract is a recorded response of
// https://api.rss2json.com/v1/api.json?rss_url=https://medium.com/feed/@jane
// trimmed to two items.
const RSS2JSONFeedContract = `{
  "status": "ok",
  "feed": {
    "url": "https://medium.com/feed/@jane",
    "title": "Stories by Jane Doe on Medium",
    "link": "https://medium.com/@jane?source=rss-abc123------2",
    "author": "",
    "description": "Stories by Jane Doe on Medium",
    "image": "https://cdn-images-1.medium.com/fit/c/150/150/1*avatar.png"
  },
  "items": [
    {
      "title": "Shipping a Flutter app in a weekend",
      "pubDate": "2024-03-01 10:00:00",
      "link": "https://medium.com/@jane/shipping-a-flutter-app-in-a-weekend-123abc?source=rss-abc123------2",
      "guid": "https://medium.com/p/123abc",
      "author": "Jane Doe",
      "thumbnail": "",
      "description": "\n<h3>Shipping a Flutter app in a weekend</h3><figure><img alt=\"\" src=\"https://cdn-images-1.medium.com/max/1024/1*cover.png\" /></figure><p>Most side projects die in the <strong>setup</strong> phase. This one did not.</p>",
      "content": "\n<h3>Shipping a Flutter app in a weekend</h3><figure><img alt=\"\" src=\"https://cdn-images-1.medium.com/max/1024/1*cover.png\" /></figure><p>Most side projects die in the <strong>setup</strong> phase. This one did not.</p>",
      "enclosure": {},
      "categories": ["flutter", "mobile-app-development", "dart"]
    },
    {
      "title": "Notes on state management",
      "pubDate": "2024-02-12 08:30:00",
      "link": "https://medium.com/@jane/notes-on-state-management-456def?source=rss-abc123------2",
      "guid": "https://medium.com/p/456def",
      "author": "Jane Doe",
      "thumbnail": "",
      "description": "<p>Short and sweet.</p>",
      "content": "<p>Short and sweet.</p>",
      "enclosure": {},
      "categories": []
    }
  ]
}`

// RSS2JSONErrorContract is the rss2json response for a feed it cannot load.
const RSS2JSONErrorContract = `{
  "status": "error",
  "message": "Cannot download this RSS feed, make sure the Rss URL is correct."
}`

// MediumRSSContract is a recorded https://medium.com/feed/@jane document
// trimmed to one item.
const MediumRSSContract = `<?xml version="1.0" encoding="UTF-8"?><rss xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom" version="2.0" xmlns:cc="http://cyber.law.harvard.edu/rss/creativeCommonsRssModule.html">
<channel>
<title><![CDATA[Stories by Jane Doe on Medium]]></title>
<description><![CDATA[Stories by Jane Doe on Medium]]></description>
<link>https://medium.com/@jane?source=rss-abc123------2</link>
<generator>Medium</generator>
<lastBuildDate>Fri, 01 Mar 2024 12:00:00 GMT</lastBuildDate>
<item>
<title><![CDATA[Shipping a Flutter app in a weekend]]></title>
<link>https://medium.com/@jane/shipping-a-flutter-app-in-a-weekend-123abc?source=rss-abc123------2</link>
<guid isPermaLink="false">https://medium.com/p/123abc</guid>
<category><![CDATA[flutter]]></category>
<category><![CDATA[dart]]></category>
<dc:creator><![CDATA[Jane Doe]]></dc:creator>
<pubDate>Fri, 01 Mar 2024 10:00:00 GMT</pubDate>
<atom:updated>2024-03-01T10:05:00.000Z</atom:updated>
<content:encoded><![CDATA[<figure><img alt="" src="https://cdn-images-1.medium.com/max/1024/1*cover.png" /></figure><p>Most side projects die in the <strong>setup</strong> phase.</p>]]></content:encoded>
</item>
</channel>
</rss>`
