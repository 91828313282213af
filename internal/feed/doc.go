// Package feed fetches and parses the three 60s API feeds: the daily digest,
// "on this day in history" and the Epic free-game promotions.
//
// Every endpoint answers with a {code, message, data} envelope. A feed is only
// accepted when the HTTP status is 2xx and the envelope code is 200; fields
// missing from data fall back to empty values (or a display placeholder for
// game promotions). Game descriptions that carry HTML are flattened to plain
// text with goquery.
package feed
