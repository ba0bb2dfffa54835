// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocodetest

// Canned service responses.
const (
	// TorontoJSON answers address="1 Front Street West, Toronto, ON", region=CA.
	TorontoJSON = `{
   "results" : [
      {
         "address_components" : [
            { "long_name" : "1", "short_name" : "1", "types" : [ "street_number" ] },
            { "long_name" : "Front Street West", "short_name" : "Front St W", "types" : [ "route" ] },
            { "long_name" : "Old Toronto", "short_name" : "Old Toronto", "types" : [ "political", "sublocality", "sublocality_level_1" ] },
            { "long_name" : "Toronto", "short_name" : "Toronto", "types" : [ "locality", "political" ] },
            { "long_name" : "Ontario", "short_name" : "ON", "types" : [ "administrative_area_level_1", "political" ] },
            { "long_name" : "Canada", "short_name" : "CA", "types" : [ "country", "political" ] },
            { "long_name" : "M5J 2X5", "short_name" : "M5J 2X5", "types" : [ "postal_code" ] }
         ],
         "formatted_address" : "1 Front St W, Toronto, ON M5J 2X5, Canada",
         "geometry" : {
            "location" : { "lat" : 43.6463685, "lng" : -79.3770610 },
            "location_type" : "ROOFTOP"
         },
         "place_id" : "ChIJ5aW3UtU0K4gRnmhT4EeEO1Q",
         "types" : [ "street_address" ]
      }
   ],
   "status" : "OK"
}`

	// MassasaugaJSON answers address="massasauga park" and has several results.
	MassasaugaJSON = `{
   "results" : [
      {
         "address_components" : [
            { "long_name" : "The Massasauga Provincial Park", "short_name" : "The Massasauga Provincial Park", "types" : [ "establishment", "park" ] },
            { "long_name" : "The Archipelago", "short_name" : "The Archipelago", "types" : [ "locality", "political" ] },
            { "long_name" : "Parry Sound District", "short_name" : "Parry Sound District", "types" : [ "administrative_area_level_2", "political" ] },
            { "long_name" : "Ontario", "short_name" : "ON", "types" : [ "administrative_area_level_1", "political" ] },
            { "long_name" : "Canada", "short_name" : "CA", "types" : [ "country", "political" ] }
         ],
         "formatted_address" : "The Massasauga Provincial Park, The Archipelago, ON, Canada",
         "geometry" : {
            "location" : { "lat" : 45.19526590, "lng" : -80.05372229999999 },
            "location_type" : "APPROXIMATE"
         },
         "types" : [ "establishment", "park" ]
      },
      {
         "address_components" : [
            { "long_name" : "Massasauga Prairie Nature Preserve", "short_name" : "Massasauga Prairie Nature Preserve", "types" : [ "park" ] },
            { "long_name" : "Roseville", "short_name" : "Roseville", "types" : [ "locality", "political" ] },
            { "long_name" : "Illinois", "short_name" : "IL", "types" : [ "administrative_area_level_1", "political" ] },
            { "long_name" : "United States", "short_name" : "US", "types" : [ "country", "political" ] },
            { "long_name" : "61417", "short_name" : "61417", "types" : [ "postal_code" ] }
         ],
         "formatted_address" : "Massasauga Prairie Nature Preserve, Roseville, IL 61417, USA",
         "geometry" : {
            "location" : { "lat" : 40.7394821, "lng" : -90.6610424 },
            "location_type" : "GEOMETRIC_CENTER"
         },
         "types" : [ "park" ]
      }
   ],
   "status" : "OK"
}`

	// ZeroResultsJSON is the answer for an address the service can't resolve.
	ZeroResultsJSON = `{
   "results" : [],
   "status" : "ZERO_RESULTS"
}`

	// TorontoXML is TorontoJSON in the XML output format.
	TorontoXML = `<?xml version="1.0" encoding="UTF-8"?>
<GeocodeResponse>
 <status>OK</status>
 <result>
  <type>street_address</type>
  <formatted_address>1 Front St W, Toronto, ON M5J 2X5, Canada</formatted_address>
  <address_component>
   <long_name>1</long_name>
   <short_name>1</short_name>
   <type>street_number</type>
  </address_component>
  <address_component>
   <long_name>Front Street West</long_name>
   <short_name>Front St W</short_name>
   <type>route</type>
  </address_component>
  <address_component>
   <long_name>Toronto</long_name>
   <short_name>Toronto</short_name>
   <type>locality</type>
   <type>political</type>
  </address_component>
  <address_component>
   <long_name>Ontario</long_name>
   <short_name>ON</short_name>
   <type>administrative_area_level_1</type>
   <type>political</type>
  </address_component>
  <address_component>
   <long_name>Canada</long_name>
   <short_name>CA</short_name>
   <type>country</type>
   <type>political</type>
  </address_component>
  <geometry>
   <location>
    <lat>43.6463685</lat>
    <lng>-79.3770610</lng>
   </location>
   <location_type>ROOFTOP</location_type>
  </geometry>
  <place_id>ChIJ5aW3UtU0K4gRnmhT4EeEO1Q</place_id>
 </result>
</GeocodeResponse>`

	// ZeroResultsXML is ZeroResultsJSON in the XML output format.
	ZeroResultsXML = `<?xml version="1.0" encoding="UTF-8"?>
<GeocodeResponse>
 <status>ZERO_RESULTS</status>
</GeocodeResponse>`
)
