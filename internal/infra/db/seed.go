package db

import (
	"context"
	"fmt"

	"khanaveve/internal/domain/model"
	repo "khanaveve/internal/repository"
)

type seedDish struct {
	name        string
	description string
	price       float64
	category    string
	imageID     string
}

var seedDishCatalog = []seedDish{
	{"Special Thali", "Complete meal: rotis, rice, dal, sabzi, salad.", 150, "Veg", "dish-1"},
	{"Paneer Butter Masala", "Creamy tomato gravy with paneer.", 220, "Veg", "dish-2"},
	{"Dal Makhani", "Slow-cooked black lentils in buttery sauce.", 180, "Veg", "dish-3"},
	{"Aloo Gobi", "Potatoes and cauliflower with spices.", 160, "Veg", "dish-4"},
	{"Veg Biryani", "Aromatic rice with mixed vegetables.", 200, "Veg", "dish-5"},
	{"Chicken Biryani", "Fragrant rice layered with spiced chicken.", 260, "Non-Veg", "dish-6"},
	{"Butter Chicken", "Creamy tomato sauce with tender chicken.", 280, "Non-Veg", "dish-7"},
	{"Tandoori Roti", "Whole wheat flatbread from tandoor.", 20, "Breads", "dish-8"},
	{"Naan", "Soft leavened bread.", 30, "Breads", "dish-9"},
	{"Gulab Jamun (2 pcs)", "Milk-solid dumplings in syrup.", 60, "Sweets", "dish-10"},
	{"Rasgulla (2 pcs)", "Spongy cheese balls in syrup.", 60, "Sweets", "dish-11"},
	{"Masala Dosa", "Crisp dosa with spiced potato.", 120, "Veg", "dish-12"},
	{"Rajma Chawal", "Kidney beans curry with rice.", 140, "Veg", "dish-3"},
	{"Fish Curry", "Spicy fish curry with rice.", 300, "Non-Veg", "dish-5"},
	{"Poha", "Flattened rice with veggies.", 60, "Veg", "dish-4"},
	{"Egg Curry", "Eggs in spicy gravy.", 180, "Non-Veg", "dish-6"},
	{"Sheera", "Semolina sweet dish.", 50, "Sweets", "dish-10"},
	{"Paratha", "Stuffed Indian bread.", 40, "Breads", "dish-9"},
	{"Sabudana Khichdi", "Sago pearls with peanuts.", 90, "Veg", "dish-4"},
	{"Shahi Paneer", "Paneer in creamy gravy.", 230, "Veg", "dish-2"},
}

var seedCuisines = []string{
	"North Indian, Maharashtrian",
	"South Indian, Thali",
	"Punjabi, Home Style",
	"Continental, North Indian",
	"Healthy, Salads",
}

var seedLocations = []string{
	"Dombivli", "Thane", "Kalyan", "Kurla", "Navi Mumbai", "Dadar",
}

var seedVendorNames = map[string][]string{
	"Dombivli":    {"Annapurna Tiffin Services", "Ghar Ka Swaad", "Purnabramha", "Sanjog", "Trupti"},
	"Thane":       {"HomelyBite Bhoganalay", "Food-o-cracy", "Rajdhani", "Swadisht Rasoi", "Tiffin Express"},
	"Kalyan":      {"DailyMeal Khanawal", "Maa Ka Khana", "HealthyThali", "Kalyan Spice House", "Kalyan Delight"},
	"Kurla":       {"Kurla Kitchen", "Home Taste Kurla", "Kurla Rasoi", "Tiffin Junction", "Kurla Meals"},
	"Navi Mumbai": {"Navi Mumbai Tiffins", "Palm Beach Bhoganalay", "Seawoods Kitchen", "Navi Mumbai Delight", "Navi Mumbai Spice House"},
	"Dadar":       {"Dadar Tiffin Service", "Dadar Home Kitchen", "Shree Dadar Bhoganalay", "Dadar Rasoi", "Dadar Delight"},
}

// SeedCatalog は店舗と料理の初期データを投入する。既にあれば何もしない。
func SeedCatalog(ctx context.Context, catalog repo.CatalogRepository) error {
	count, err := catalog.CountVendors(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for locIdx, loc := range seedLocations {
		for i := 0; i < 5; i++ {
			idNum := locIdx*5 + 1 + i
			v := buildSeedVendor(loc, i, idNum)
			dishes := buildSeedDishes(v.ID, idNum)

			if err := catalog.CreateVendor(ctx, v, dishes); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildSeedVendor(location string, i int, idNum int) model.Vendor {
	imageID := fmt.Sprintf("vendor-%d", idNum)
	switch location {
	case "Dadar":
		imageID = fmt.Sprintf("dadar-%d", i+1)
	case "Navi Mumbai":
		imageID = fmt.Sprintf("navimumbai-food-%d", i+1)
	}

	return model.Vendor{
		ID:       fmt.Sprintf("%d", idNum),
		Name:     seedVendorNames[location][i],
		Location: location,
		Rating:   4 + float64((i*7)%10)/10, // 4.0〜4.9
		Cuisine:  seedCuisines[i%len(seedCuisines)],
		PrepTime: 20 + (i%5)*5, // 20〜40分
		ImageID:  imageID,
	}
}

// 各店舗にカタログを回して10品ずつ割り当てる
func buildSeedDishes(vendorID string, idNum int) []model.Dish {
	offset := idNum % 10
	dishes := make([]model.Dish, 0, 10)

	for idx := 0; idx < 10; idx++ {
		d := seedDishCatalog[(offset+idx)%len(seedDishCatalog)]
		dishes = append(dishes, model.Dish{
			ID:          fmt.Sprintf("%s-d%d", vendorID, idx+1),
			VendorID:    vendorID,
			Name:        d.name,
			Description: d.description,
			Price:       d.price + float64((idNum*3+idx*7)%30),
			Category:    d.category,
			ImageID:     d.imageID,
		})
	}
	return dishes
}
