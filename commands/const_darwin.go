package commands

const (
	_var = "/usr/local/var/anki-sheets"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CONFIG      = "./config/config.json"
	DEFAULT_CREDENTIALS = "./config/credentials.json"
	DEFAULT_OUTPUT      = "./output/cards.tsv"
)
