package dupe

// Group indexes results by fingerprint and keeps only fingerprints
// shared by two or more paths. Within a group, paths appear in the
// order their results were observed; that order carries no meaning
// beyond display, and the groups formed are independent of it.
func Group(results []FileResult) map[string][]string {
	byPrint := make(map[string][]string, len(results))
	for _, res := range results {
		byPrint[res.Fingerprint] = append(byPrint[res.Fingerprint], res.Path)
	}
	for print, paths := range byPrint {
		if len(paths) < 2 {
			delete(byPrint, print)
		}
	}
	return byPrint
}
