package edit

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// hintKeys are the catalog keys of the layers that show a hint while
// hovered. The English text doubles as the key.
var hintKeys = map[Layer]string{
	LayerPath:           "ctrl+click to add node\nright click to remove path",
	LayerCenterpoint:    "click and drag to move - click : linear or feathered\nctrl+click : symmetrical, smooth, cusp, autosmooth\nright-click to remove",
	LayerCtrlpoint1:     "drag to change shape of path",
	LayerCtrlpoint2:     "drag to change shape of path",
	LayerRadiuspoint:    "drag to adjust warp radius",
	LayerHardnesspoint1: "drag to adjust hardness (center)",
	LayerHardnesspoint2: "drag to adjust hardness (feather)",
	LayerStrengthpoint:  "drag to adjust warp strength\nctrl+click : linear, grow, and shrink",
}

var germanHints = map[string]string{
	hintKeys[LayerPath]:           "Strg+Klick fügt einen Knoten hinzu\nRechtsklick entfernt den Pfad",
	hintKeys[LayerCenterpoint]:    "Klicken und ziehen zum Verschieben - Klick: linear oder weich\nStrg+Klick: symmetrisch, glatt, Spitze, automatisch glatt\nRechtsklick zum Entfernen",
	hintKeys[LayerCtrlpoint1]:     "ziehen, um die Form des Pfads zu ändern",
	hintKeys[LayerRadiuspoint]:    "ziehen, um den Radius anzupassen",
	hintKeys[LayerHardnesspoint1]: "ziehen, um die Härte anzupassen (Mitte)",
	hintKeys[LayerHardnesspoint2]: "ziehen, um die Härte anzupassen (Rand)",
	hintKeys[LayerStrengthpoint]:  "ziehen, um die Stärke anzupassen\nStrg+Klick: linear, wachsen und schrumpfen",
}

var (
	hintCatalog   = buildHintCatalog()
	hintLanguages = []language.Tag{language.English, language.German}
	hintMatcher   = language.NewMatcher(hintLanguages)
)

func buildHintCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	var errs []error
	for _, key := range hintKeys {
		errs = append(errs, b.SetString(language.English, key, key))
	}
	for key, msg := range germanHints {
		errs = append(errs, b.SetString(language.German, key, msg))
	}
	if err := errors.Join(errs...); err != nil {
		panic(fmt.Sprintf("edit: hint catalog: %v", err))
	}
	return b
}

// HintLanguages lists the languages hints are translated to. The first
// one is used for unsupported languages.
func HintLanguages() []language.Tag {
	return slices.Clone(hintLanguages)
}

// Hint returns the localized hint shown while l is hovered, or "" for
// layers without one.
func Hint(l Layer, tag language.Tag) string {
	key, ok := hintKeys[l]
	if !ok {
		return ""
	}
	_, i, _ := hintMatcher.Match(tag)
	p := message.NewPrinter(hintLanguages[i], message.Catalog(hintCatalog))
	return p.Sprintf(message.Key(key, key))
}
