package overpass_client

// responseDTO - ответ Overpass в формате [out:json].
// Elements - указатель: отсутствие ключа отличается от пустого списка.
// Remark заполняется сервером при ошибке выполнения запроса.
type responseDTO struct {
	Elements *[]elementDTO `json:"elements"`
	Remark   string        `json:"remark"`
}

// elementDTO покрывает и node, и way: у node заполнены Lat/Lon, у way - Nodes и Tags.
type elementDTO struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat"`
	Lon   float64           `json:"lon"`
	Nodes []int64           `json:"nodes"`
	Tags  map[string]string `json:"tags"`
}
