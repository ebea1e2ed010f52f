package response

type LocationsResponse struct {
	Locations []string `json:"locations"`
}
