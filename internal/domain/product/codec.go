package product

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// DecodeList decodes a JSON array of products. Unknown object fields are
// skipped so upstream schema additions do not break decoding.
func DecodeList(data []byte) ([]Product, error) {
	d := jx.DecodeBytes(data)

	var products []Product
	if err := d.Arr(func(d *jx.Decoder) error {
		p, err := decode(d)
		if err != nil {
			return err
		}
		products = append(products, p)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode product list")
	}
	return products, nil
}

// EncodeList encodes products as a JSON array, the inverse of DecodeList.
func EncodeList(products []Product) []byte {
	e := &jx.Encoder{}
	e.ArrStart()
	for _, p := range products {
		encode(e, p)
	}
	e.ArrEnd()
	return e.Bytes()
}

func decode(d *jx.Decoder) (Product, error) {
	var p Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			id, err := d.Int64()
			if err != nil {
				return errors.Wrap(err, "id")
			}
			p.ID = id
		case "title":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "title")
			}
			p.Title = s
		case "price":
			n, err := d.Num()
			if err != nil {
				return errors.Wrap(err, "price")
			}
			price, err := decimal.NewFromString(string(n))
			if err != nil {
				return errors.Wrap(err, "price")
			}
			p.Price = price
		case "description":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "description")
			}
			p.Description = s
		case "category":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "category")
			}
			p.Category = s
		case "image":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "image")
			}
			p.Image = s
		default:
			return d.Skip()
		}
		return nil
	})
	return p, err
}

func encode(e *jx.Encoder, p Product) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int64(p.ID)
	e.FieldStart("title")
	e.Str(p.Title)
	e.FieldStart("price")
	e.Num(jx.Num(p.Price.String()))
	e.FieldStart("description")
	e.Str(p.Description)
	e.FieldStart("category")
	e.Str(p.Category)
	e.FieldStart("image")
	e.Str(p.Image)
	e.ObjEnd()
}
