package utils

func GetExtensionFromMime(mimeType string) string {
	switch mimeType {
	case "application/json":
		return "json"
	case "text/vcard", "text/x-vcard":
		return "vcf"
	case "image/png":
		return "png"
	default:
		return "bin"
	}
}

func GetMimeFromFormat(format string) (string, bool) {
	switch format {
	case "json":
		return "application/json", true
	case "vcf", "vcard":
		return "text/vcard", true
	default:
		return "", false
	}
}
