package spotrm

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Help returns the API's descriptive key/value map.
func (c *Client) Help(ctx context.Context, cred Credential) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/help", cred, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DrugByID looks up a drug by its SpotRM database id.
func (c *Client) DrugByID(ctx context.Context, id int, cred Credential) (Drug, error) {
	var out Drug
	if err := c.getJSON(ctx, "/get/drug/id/"+strconv.Itoa(id), cred, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchSubstructure returns drugs containing the given SMILES substructure.
func (c *Client) SearchSubstructure(ctx context.Context, smiles string, cred Credential) ([]Drug, error) {
	var out []Drug
	if err := c.postJSON(ctx, "/search/drug/substructure/smiles", smiles, cred, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchAlerts returns the structural alerts triggered by smiles.
func (c *Client) SearchAlerts(ctx context.Context, smiles string, cred Credential) ([]Alert, error) {
	var out []Alert
	if err := c.postJSON(ctx, "/search/smarts/smiles", smiles, cred, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DrugsForAlert returns the drugs associated with an alert, keyed by drug id.
func (c *Client) DrugsForAlert(ctx context.Context, alertID string, cred Credential) (map[string]Drug, error) {
	var out map[string]Drug
	if err := c.getJSON(ctx, "/get/drug/smarts_id/"+url.PathEscape(alertID), cred, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Image returns the SVG highlighting the region of smiles that triggers the
// alert smartsID.
func (c *Client) Image(ctx context.Context, smiles string, smartsID int, cred Credential) ([]byte, error) {
	res, err := c.DoBinary(ctx, http.MethodPost, "/get/image/smiles", ImageQuery{SMILES: smiles, SmartsID: smartsID}, cred)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return res.Bytes(), nil
}

func (c *Client) getJSON(ctx context.Context, path string, cred Credential, out any) error {
	res, err := c.Do(ctx, http.MethodGet, path, nil, cred)
	if err != nil {
		return err
	}
	return res.Decode(out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, cred Credential, out any) error {
	res, err := c.Do(ctx, http.MethodPost, path, body, cred)
	if err != nil {
		return err
	}
	return res.Decode(out)
}
