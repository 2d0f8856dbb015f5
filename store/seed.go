package store

import (
	"context"

	"github.com/TanmaySingh007/StayFinder/domain"
)

// SeedCatalog ingests the demo catalog when the store is empty. Startup
// calls it so a fresh deployment has something to search.
func SeedCatalog(ctx context.Context, store domain.ListingStore) error {
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, listing := range DemoCatalog() {
		if _, err := store.Insert(ctx, listing); err != nil {
			return err
		}
	}
	return nil
}

// DemoCatalog returns the six demo listings.
func DemoCatalog() domain.Listings {
	return domain.Listings{
		{
			Title:       "Luxury Beachfront Villa",
			Description: "Wake up to stunning ocean views in this beautifully designed beachfront villa. Perfect for families or couples seeking a peaceful retreat.",
			Location:    "Malibu, California",
			Coordinates: domain.Coordinates{Lat: 34.0259, Lng: -118.7798},
			Price:       450,
			Rating:      4.9,
			ReviewCount: 127,
			Images: []string{
				"https://images.unsplash.com/photo-1613490493576-7fde63acd811?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1582268611958-ebfd161ef9cf?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1571896349842-33c89424de2d?w=800&h=600&fit=crop",
			},
			Amenities:    []string{"Ocean view", "Pool", "WiFi", "Kitchen", "Parking", "Air conditioning"},
			Host:         domain.Host{Name: "Sarah Johnson", JoinedDate: "2019", IsSuperhost: true},
			PropertyType: "Villa",
			MaxGuests:    8,
			Bedrooms:     4,
			Bathrooms:    3,
		},
		{
			Title:       "Modern Downtown Loft",
			Description: "Stylish loft in the heart of downtown with exposed brick walls and floor-to-ceiling windows. Walking distance to restaurants and nightlife.",
			Location:    "New York, New York",
			Coordinates: domain.Coordinates{Lat: 40.7128, Lng: -74.0060},
			Price:       280,
			Rating:      4.7,
			ReviewCount: 89,
			Images: []string{
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1574180045827-681f8a1a9622?w=800&h=600&fit=crop",
			},
			Amenities:    []string{"City view", "WiFi", "Kitchen", "Gym access", "Elevator", "Workspace"},
			Host:         domain.Host{Name: "Michael Chen", JoinedDate: "2020", IsSuperhost: false},
			PropertyType: "Loft",
			MaxGuests:    4,
			Bedrooms:     2,
			Bathrooms:    2,
		},
		{
			Title:       "Cozy Mountain Cabin",
			Description: "Escape to nature in this charming log cabin surrounded by pine trees. Features a fireplace, hot tub, and hiking trails nearby.",
			Location:    "Aspen, Colorado",
			Coordinates: domain.Coordinates{Lat: 39.1911, Lng: -106.8175},
			Price:       320,
			Rating:      4.8,
			ReviewCount: 156,
			Images: []string{
				"https://images.unsplash.com/photo-1449824913935-59a10b8d2000?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=800&h=600&fit=crop",
			},
			Amenities:    []string{"Mountain view", "Hot tub", "Fireplace", "WiFi", "Kitchen", "Parking"},
			Host:         domain.Host{Name: "Emma Wilson", JoinedDate: "2018", IsSuperhost: true},
			PropertyType: "Cabin",
			MaxGuests:    6,
			Bedrooms:     3,
			Bathrooms:    2,
		},
		{
			Title:       "Historic Brownstone Apartment",
			Description: "Beautiful 19th-century brownstone apartment with original hardwood floors, high ceilings, and modern amenities.",
			Location:    "Boston, Massachusetts",
			Coordinates: domain.Coordinates{Lat: 42.3601, Lng: -71.0589},
			Price:       195,
			Rating:      4.6,
			ReviewCount: 74,
			Images: []string{
				"https://images.unsplash.com/photo-1484154218962-a197022b5858?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1513694203232-719a280e022f?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800&h=600&fit=crop",
			},
			Amenities:    []string{"Historic charm", "WiFi", "Kitchen", "Laundry", "Heating", "Cable TV"},
			Host:         domain.Host{Name: "David Martinez", JoinedDate: "2021", IsSuperhost: false},
			PropertyType: "Apartment",
			MaxGuests:    4,
			Bedrooms:     2,
			Bathrooms:    1,
		},
		{
			Title:       "Desert Oasis Resort",
			Description: "Luxurious desert retreat with infinity pool, spa services, and stunning sunset views. Perfect for romantic getaways.",
			Location:    "Scottsdale, Arizona",
			Coordinates: domain.Coordinates{Lat: 33.4942, Lng: -111.9261},
			Price:       380,
			Rating:      4.9,
			ReviewCount: 203,
			Images: []string{
				"https://images.unsplash.com/photo-1540541338287-41700207dee6?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1571003123894-1f0594d2b5d9?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?w=800&h=600&fit=crop",
			},
			Amenities:    []string{"Desert view", "Pool", "Spa", "WiFi", "Restaurant", "Fitness center"},
			Host:         domain.Host{Name: "Lisa Rodriguez", JoinedDate: "2017", IsSuperhost: true},
			PropertyType: "Resort",
			MaxGuests:    2,
			Bedrooms:     1,
			Bathrooms:    1,
		},
		{
			Title:       "Waterfront Cottage",
			Description: "Charming cottage right on the lake with private dock, kayaks, and fishing equipment. Perfect for outdoor enthusiasts.",
			Location:    "Lake Tahoe, California",
			Coordinates: domain.Coordinates{Lat: 39.0968, Lng: -120.0324},
			Price:       225,
			Rating:      4.7,
			ReviewCount: 91,
			Images: []string{
				"https://images.unsplash.com/photo-1518780664697-55e3ad937233?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1501436513145-30f24e19fcc4?w=800&h=600&fit=crop",
			},
			Amenities:    []string{"Lake view", "Private dock", "Kayaks", "WiFi", "Kitchen", "Fireplace"},
			Host:         domain.Host{Name: "James Thompson", JoinedDate: "2019", IsSuperhost: false},
			PropertyType: "Cottage",
			MaxGuests:    5,
			Bedrooms:     2,
			Bathrooms:    1,
		},
	}
}
