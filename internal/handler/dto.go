package handler

type ArticleResponse struct {
	BillID            string   `json:"bill_id"`
	BillTitle         string   `json:"bill_title"`
	SponsorBioguideID string   `json:"sponsor_bioguide_id"`
	BillCommitteeIDs  []string `json:"bill_committee_ids"`
	ArticleContent    string   `json:"article_content"`
}

type ArticlesResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Total    int               `json:"total"`
}
