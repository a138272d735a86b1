package pages

import (
	"fmt"

	"github.com/go-rod/rod"

	"booker-e2e/internal/browser"
	"booker-e2e/internal/model"
)

// The feature checkboxes expose neither an accessible name nor a test id, so
// the mapping from amenity to control is a fixed id table. Keeping it as an
// enumerated map (rather than building selectors from strings) means an
// unknown feature fails loudly at lookup time.
var featureToggleSelectors = map[model.Feature]string{
	model.FeatureWiFi:         "#wifiCheckbox",
	model.FeatureRefreshments: "#refreshCheckbox",
	model.FeatureTV:           "#tvCheckbox",
	model.FeatureSafe:         "#safeCheckbox",
	model.FeatureRadio:        "#radioCheckbox",
	model.FeatureViews:        "#viewsCheckbox",
}

// featureResetOrder is the order the update form's toggles are cleared in
// before applying the requested subset.
var featureResetOrder = []model.Feature{
	model.FeatureWiFi,
	model.FeatureSafe,
	model.FeatureRefreshments,
	model.FeatureViews,
	model.FeatureRadio,
	model.FeatureTV,
}

func featureToggle(sess *browser.Session, f model.Feature) (*rod.Element, error) {
	sel, ok := featureToggleSelectors[f]
	if !ok {
		return nil, fmt.Errorf("no toggle mapped for feature %q", f)
	}
	return sess.BySelector(sel)
}
