// Package composer assembles the report sections into a single Word document:
// it checks the submission, runs each section builder in order, and writes the
// resulting blocks with pkg/docx.
package composer
