package fetcher

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"yad2watch/internal/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawListing
		want    model.Listing
		wantErr error
	}{
		{
			name: "full listing",
			raw: RawListing{
				ID: "kx92mwq7", Title: "סיאט איביזה FR", Price: "54,900 ₪",
				Year: "2015", Km: "98,000", Location: "תל אביב",
				Href: "/vehicles/item/kx92mwq7", Page: 1,
			},
			want: model.Listing{
				ID: "kx92mwq7", Title: "סיאט איביזה FR", Price: 54900,
				Year: 2015, Mileage: 98000, Location: "תל אביב",
				URL: "https://www.yad2.co.il/vehicles/item/kx92mwq7",
			},
		},
		{
			name: "missing optional fields become sentinels",
			raw:  RawListing{ID: "ab12cd34", Title: "רכב"},
			want: model.Listing{
				ID: "ab12cd34", Title: "רכב",
				Price: model.UnknownInt, Year: model.UnknownInt, Mileage: model.UnknownInt,
			},
		},
		{
			name: "price without digits",
			raw:  RawListing{ID: "ab12cd34", Price: "לא צוין מחיר", Year: "2019"},
			want: model.Listing{
				ID: "ab12cd34", Price: model.UnknownInt, Year: 2019, Mileage: model.UnknownInt,
			},
		},
		{
			name: "absolute url preserved",
			raw:  RawListing{ID: "ab12cd34", Href: "https://www.yad2.co.il/vehicles/item/ab12cd34"},
			want: model.Listing{
				ID: "ab12cd34", URL: "https://www.yad2.co.il/vehicles/item/ab12cd34",
				Price: model.UnknownInt, Year: model.UnknownInt, Mileage: model.UnknownInt,
			},
		},
		{
			name:    "missing id",
			raw:     RawListing{Title: "מודעה ממומנת", Price: "39,000 ₪", Page: 2},
			wantErr: ErrMissingID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("listing mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
