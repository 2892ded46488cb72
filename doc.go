/*
Package anki-sheets exports flashcards kept in a Google Sheets worksheet to a TSV file for import into Anki.

anki-sheets is intended to be run from the command line (or a cron job) against a worksheet with a header row
and an 'archived' column. Rows with an empty or '0' 'archived' column are written to the TSV file and then marked
as archived in the worksheet so that the next export only picks up new cards.

anki-sheets supports the following commands:

  - authorise, to authorise application access to the Google Sheets worksheet
  - export, to export the unarchived rows of a worksheet to a TSV file and mark them as archived
  - get, to download a Google Sheets worksheet as a TSV file
  - put, to store a TSV file to a Google Sheets worksheet
*/
package sheets
