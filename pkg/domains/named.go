package domains

import (
	"sort"

	"github.com/embedx-ml/embedx/pkg/errors"
)

// Named domains used to crop label maps. Coordinates can be drawn on
// https://geojson.io and registered here.
var named = map[string]Rectangle{
	"ireland":                  {MinLon: -11.1, MaxLon: -4.8, MinLat: 50.9, MaxLat: 55.6},
	"dublin_city":              {MinLon: -6.3139, MaxLon: -6.2209, MinLat: 53.3321, MaxLat: 53.3784},
	"dublin_county":            {MinLon: -6.5468919, MaxLon: -6.0439503, MinLat: 53.1782636, MaxLat: 53.509983},
	"toulouse":                 {MinLon: 1.336, MaxLon: 1.508, MinLat: 43.554, MaxLat: 43.674},
	"nanterre":                 {MinLon: 2.166, MaxLon: 2.272, MinLat: 48.861, MaxLat: 48.936},
	"europe":                   {MinLon: -20, MaxLon: 30, MinLat: 32, MaxLat: 70},
	"eurat":                    {MinLon: -32, MaxLon: 42, MinLat: 20, MaxLat: 72},
	"freastern_eurat":          {MinLon: 8.24, MaxLon: 42, MinLat: 20, MaxLat: 72},
	"reunion_island":           {MinLon: 55.1958, MaxLon: 55.8723, MinLat: -21.4286, MaxLat: -20.8180},
	"burren":                   {MinLon: -9.15985, MaxLon: -9.0469, MinLat: 53.0871, MaxLat: 53.1504},
	"waterville_kerry":         {MinLon: -10.2018, MaxLon: -10.1518, MinLat: 51.8020, MaxLat: 51.8466},
	"waterville_kerry_124x133": {MinLon: -10.16, MaxLon: -10.141, MinLat: 51.83, MaxLat: 51.841},
	"florida_mangrove":         {MinLon: -81.5995, MaxLon: -81.5664, MinLat: 25.9753, MaxLat: 26.0097},
	"snaefell_glacier":         {MinLon: -15.5828, MaxLon: -15.4863, MinLat: 64.7673, MaxLat: 64.8113},
	"ngambe_jungle":            {MinLon: 10.5992, MaxLon: 10.6443, MinLat: 4.2156, MaxLat: 4.2581},
	"mars_cevennes":            {MinLon: 3.5389, MaxLon: 3.5836, MinLat: 43.9913, MaxLat: 44.0259},
	"jokioinen_crops":          {MinLon: 23.4278, MaxLon: 23.4913, MinLat: 60.7896, MaxLat: 60.8204},
	"reunion_crops":            {MinLon: 55.6638, MaxLon: 55.7004, MinLat: -21.0505, MaxLat: -21.0150},
	"savage_canary_island":     {MinLon: -15.8935, MaxLon: -15.8517, MinLat: 30.1319, MaxLat: 30.1677},
	"iso_kihdinluoto":          {MinLon: 21.122670101126037, MaxLon: 21.239336767792704, MinLat: 60.483903274933496, MaxLat: 60.60056994160016},
	"bigearthnet_fulldom":      {MinLon: -9.00023345437725, MaxLon: 36.956956702083396, MinLat: 31.598439091981028, MaxLat: 68.02168200047284},
}

// Get returns a named domain.
func Get(name string) (Rectangle, error) {
	r, ok := named[name]
	if !ok {
		return Rectangle{}, errors.NewDomainUnknownError(name)
	}
	return r, nil
}

// Names lists all named domains in lexical order.
func Names() []string {
	out := make([]string, 0, len(named))
	for name := range named {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
