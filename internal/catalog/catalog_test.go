package catalog

import (
	"testing"

	"github.com/hanifwidodo/merchorder-backend/pkg/enums"
	pkgerrors "github.com/hanifwidodo/merchorder-backend/pkg/errors"
)

func TestUnitPrice(t *testing.T) {
	t.Parallel()

	c := Default()

	cases := []struct {
		name    string
		garment enums.GarmentType
		size    string
		want    int64
	}{
		{"polo base size", enums.GarmentPolo, "M", 85000},
		{"polo extended size", enums.GarmentPolo, "XXL", 90000},
		{"tee base size", enums.GarmentTee, "S", 75000},
		{"tee largest size", enums.GarmentTee, "XXXXXL", 95000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.UnitPrice(tc.garment, tc.size)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unit price = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestUnitPriceUnknownSize(t *testing.T) {
	t.Parallel()

	c := Default()

	_, err := c.UnitPrice(enums.GarmentPolo, "XS")
	if err == nil {
		t.Fatal("expected error for unknown size")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error code: %v", err)
	}

	_, err = c.UnitPrice(enums.GarmentType("hoodie"), "M")
	if err == nil {
		t.Fatal("expected error for unknown garment")
	}
}

func TestSleeveSurcharge(t *testing.T) {
	t.Parallel()

	c := Default()

	long, err := c.SleeveSurcharge(enums.SleeveLong)
	if err != nil || long != 5000 {
		t.Fatalf("long sleeve surcharge = %d, %v", long, err)
	}

	ruffled, err := c.SleeveSurcharge(enums.SleeveRuffled)
	if err != nil || ruffled != 7000 {
		t.Fatalf("ruffled sleeve surcharge = %d, %v", ruffled, err)
	}

	if _, err := c.SleeveSurcharge(enums.SleeveStyle("puffed")); err == nil {
		t.Fatal("expected error for unknown sleeve style")
	}
}

func TestAccessoryPrice(t *testing.T) {
	t.Parallel()

	c := Default()

	cap, err := c.AccessoryPrice(enums.AccessoryCap)
	if err != nil || cap != 35000 {
		t.Fatalf("cap price = %d, %v", cap, err)
	}

	mug, err := c.AccessoryPrice(enums.AccessoryMug)
	if err != nil || mug != 25000 {
		t.Fatalf("mug price = %d, %v", mug, err)
	}

	if _, err := c.AccessoryPrice(enums.Accessory("sticker")); err == nil {
		t.Fatal("expected error for unknown accessory")
	}
}

func TestHasSize(t *testing.T) {
	t.Parallel()

	c := Default()

	if !c.HasSize(enums.GarmentPolo, "XXXL") {
		t.Fatal("expected polo to offer 3XL")
	}
	if c.HasSize(enums.GarmentTee, "XS") {
		t.Fatal("did not expect tee to offer XS")
	}
	if c.HasSize(enums.GarmentType("hoodie"), "M") {
		t.Fatal("did not expect unknown garment to have sizes")
	}
}
