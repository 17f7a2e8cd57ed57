// Package formdef describes the report form: the fields a student fills in,
// their labels and the presence and shape rules a submission must satisfy.
// Forms are declared as OpenAPI 3 request bodies so the same definition drives
// the HTML page, the terminal prompts and the JSON API.
package formdef
